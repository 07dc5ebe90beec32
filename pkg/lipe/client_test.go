package lipe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LipeCore/internal/domain/models"
)

func TestClient_SendsIdentityHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(models.Health{OK: true, Name: models.ServiceName, TS: "2025-03-10T12:00:00.5Z"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/", Token: "tok", TenantID: "acme", UserEmail: "ops@acme.dev"})
	h, ts, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !h.OK || ts.IsZero() || ts.Nanosecond() != 500_000_000 {
		t.Fatalf("unexpected health %+v ts=%v", h, ts)
	}
	if got.Get("Authorization") != "Bearer tok" || got.Get("x-tenant-id") != "acme" || got.Get("x-user-email") != "ops@acme.dev" {
		t.Fatalf("unexpected headers %v", got)
	}
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(models.Health{OK: true})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if !c.Ping(context.Background()) {
		t.Fatalf("expected ping to succeed")
	}
	if got.Get("Authorization") != "" {
		t.Fatalf("unexpected authorization header %q", got.Get("Authorization"))
	}
	if got.Get("x-tenant-id") != DefaultTenantID || got.Get("x-user-email") != DefaultUserEmail {
		t.Fatalf("expected default identity headers, got %v", got)
	}
}

func TestClient_ForecastRequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/forecast" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"arena":"crypto","symbol":"BTCUSDT","horizon":7}` {
			t.Errorf("unexpected body %s", b)
		}
		_, _ = w.Write([]byte(`{"meta":{"symbol":"BTCUSDT"},"metrics":{"entropy":0.4,"edge":1.1},
			"forecast":{"points":[{"ts":"2025-01-02T00:00:00Z","yhat":101,"q10":99,"q90":103}]},"series_tail":[]}`))
	}))
	defer srv.Close()

	res, err := New(Config{BaseURL: srv.URL}).Forecast(context.Background(), "crypto", "BTCUSDT", 7)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(res.Forecast.Points) != 1 || res.Forecast.Points[0].YHat != 101 || res.Metrics.Edge != 1.1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestClient_EvaluateStrategySendsEmptyRuleLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["exit"].([]any); !ok {
			t.Errorf("expected exit to be a JSON array, got %v", body["exit"])
		}
		_, _ = w.Write([]byte(`{"metrics":{"HitRate":0.5,"ROI":0.1,"MaxDD":0.2,"Trades":2},"equity_curve":[]}`))
	}))
	defer srv.Close()

	res, err := New(Config{BaseURL: srv.URL}).EvaluateStrategy(context.Background(), models.StrategySpec{
		Arena: "crypto", Symbol: "BTC", Horizon: 5, LookbackDays: 90,
		Enter: []models.Rule{{Field: models.FieldEdge, Op: models.OpGTE, Value: 0.5}},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Metrics.Trades != 2 || res.Metrics.HitRate != 0.5 {
		t.Fatalf("unexpected metrics %+v", res.Metrics)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"message":"Not Found","data":[{"code":"ERR_NOT_FOUND","message":"not found / expired"}]}`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).GetShare(context.Background(), "abc")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "lipe api: 404 not found / expired" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if _, err := c.PublicSLO(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LIPE_API_BASE", "https://lipe.example/")
	t.Setenv("HIS_API_TOKEN", "secret")
	t.Setenv("HIS_TENANT_ID", "")
	t.Setenv("HIS_USER_EMAIL", "me@x.dev")

	c := ConfigFromEnv()
	if c.BaseURL != "https://lipe.example" || c.Token != "secret" || c.TenantID != DefaultTenantID || c.UserEmail != "me@x.dev" {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.Timeout != DefaultTimeout {
		t.Fatalf("unexpected timeout %v", c.Timeout)
	}
}
