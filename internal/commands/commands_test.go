package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"LipeCore/internal/domain/models"
)

func TestParseRule(t *testing.T) {
	cases := []struct {
		in   string
		want models.Rule
	}{
		{"edge>=0.5", models.Rule{Field: "edge", Op: ">=", Value: 0.5}},
		{"entropy <= 0.8", models.Rule{Field: "entropy", Op: "<=", Value: 0.8}},
		{"Drawdown>=-0.1", models.Rule{Field: "drawdown", Op: ">=", Value: -0.1}},
	}
	for _, tc := range cases {
		got, err := parseRule(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"edge>0.5", "volume>=1", "edge>=", "edge>=abc", ""} {
		if _, err := parseRule(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShareGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"message":"Not Found","data":[{"message":"not found / expired"}]}`))
	}))
	defer srv.Close()

	_, err := run(t, srv, "share", "get", "deadbeef")
	if err == nil || !strings.Contains(err.Error(), "not found or expired") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStrategy_SendsParsedRules(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		body = buf.String()
		_, _ = w.Write([]byte(`{"metrics":{"HitRate":1,"ROI":0.05,"MaxDD":0.01,"Trades":1},"equity_curve":[{"ts":"x","equity":1.05}]}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "strategy", "BTCUSDT", "--enter", "edge>=0.5", "--exit", "entropy>=0.9", "--lookback", "90")
	if err != nil {
		t.Fatalf("strategy: %v", err)
	}
	var req struct {
		LookbackDays int           `json:"lookback_days"`
		Enter        []models.Rule `json:"enter"`
		Exit         []models.Rule `json:"exit"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	want := models.Rule{Field: "edge", Op: ">=", Value: 0.5}
	if req.LookbackDays != 90 || len(req.Enter) != 1 || req.Enter[0] != want || len(req.Exit) != 1 {
		t.Fatalf("unexpected request body %s", body)
	}
	if !strings.Contains(out, "trades=1") || !strings.Contains(out, "roi=5.00%") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStrategy_RejectsBadRuleBeforeCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	if _, err := run(t, srv, "strategy", "BTC", "--enter", "edge=1"); err == nil {
		t.Fatalf("expected rule parse error")
	}
	if called {
		t.Fatalf("server must not be called for an invalid rule")
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/public/slo.json":
			_, _ = w.Write([]byte(`{"service":"HIS • LIPE Core","p95_ms_forecast":180,"uptime_7d":0.999}`))
		case "/v1/public/accuracy.json":
			_, _ = w.Write([]byte(`{"Crypto":{"HitRate_7d":0.61,"SMAPE_30d":0.12},"Sports":{"HitRate_7d":0.53},"Lottery":{"GFW_30d":0.18}}`))
		case "/v1/public/plans.json":
			_, _ = w.Write([]byte(`{"plans":[{"id":"pro","name":"Pro","price_usd_month":19,"features":["a","b"]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := run(t, srv, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"p95_forecast=180ms", "crypto[HitRate_7d=0.61 SMAPE_30d=0.12]", "pro", "a, b"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
