package cache

import "testing"

func TestGenerateKeySkipsEmptyParts(t *testing.T) {
	if got := GenerateKey("lipe", "", "share", "abc"); got != "lipe:share:abc" {
		t.Fatalf("got %q", got)
	}
	if got := GenerateKey("", "x"); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestCodecStringsVerbatim(t *testing.T) {
	b, err := encodeValue("plain")
	if err != nil || string(b) != "plain" {
		t.Fatalf("encode string: %s %v", b, err)
	}
	var s string
	if err := decodeValue(b, &s); err != nil || s != "plain" {
		t.Fatalf("decode string: %q %v", s, err)
	}
}

func TestCodecDecodeError(t *testing.T) {
	var v item
	if err := decodeValue([]byte("{broken"), &v); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := encodeValue(make(chan int)); err == nil {
		t.Fatalf("expected encode error")
	}
}

func TestRedisKeyPrefix(t *testing.T) {
	c := newRedisCache(nil, "lipe")
	if got := c.key("share:t1"); got != "lipe:share:t1" {
		t.Fatalf("got %q", got)
	}
	if got := newRedisCache(nil, "").keys([]string{"a", "b"}); got[0] != "a" || got[1] != "b" {
		t.Fatalf("unprefixed keys changed: %v", got)
	}
}
