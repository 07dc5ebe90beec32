// Package lipe is a typed client for the LIPE Core HTTP API.
package lipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"LipeCore/internal/domain/models"
	xhttp "LipeCore/pkg/http"
	"LipeCore/pkg/util"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 25 * time.Second
	DefaultTenantID  = "demo-tenant"
	DefaultUserEmail = "demo@user.dev"
)

// Config holds connection settings and the identity headers sent with every call.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Token     string // sent as "Authorization: Bearer <token>" when set
	TenantID  string
	UserEmail string
}

// ConfigFromEnv reads LIPE_API_BASE, HIS_API_TOKEN, HIS_TENANT_ID and HIS_USER_EMAIL.
func ConfigFromEnv() Config {
	c := Config{
		BaseURL:   os.Getenv("LIPE_API_BASE"),
		Token:     os.Getenv("HIS_API_TOKEN"),
		TenantID:  os.Getenv("HIS_TENANT_ID"),
		UserEmail: os.Getenv("HIS_USER_EMAIL"),
	}
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.TenantID == "" {
		c.TenantID = DefaultTenantID
	}
	if c.UserEmail == "" {
		c.UserEmail = DefaultUserEmail
	}
	return c
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lipe api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	cfg  Config
	http *xhttp.Client
}

func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{cfg: cfg, http: xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout))}
}

// BaseURL returns the normalized API base.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"x-tenant-id":  c.cfg.TenantID,
		"x-user-email": c.cfg.UserEmail,
	}
	if c.cfg.Token != "" {
		h["Authorization"] = "Bearer " + c.cfg.Token
	}
	return h
}

func (c *Client) call(ctx context.Context, method, path string, body, dest interface{}) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  method,
		URL:     c.cfg.BaseURL + path,
		Headers: c.headers(),
		Body:    body,
	}, dest)
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return &APIError{Status: se.Code, Message: errorMessage(se.Body)}
	}
	return err
}

// Health returns the health document and its parsed timestamp.
func (c *Client) Health(ctx context.Context) (models.Health, time.Time, error) {
	var h models.Health
	if err := c.call(ctx, xhttp.MethodGet, "/healthz", nil, &h); err != nil {
		return h, time.Time{}, err
	}
	ts, _ := util.ParseTime(h.TS)
	return h, ts, nil
}

// Ping reports whether /healthz answers ok.
func (c *Client) Ping(ctx context.Context) bool {
	h, _, err := c.Health(ctx)
	return err == nil && h.OK
}

type forecastBody struct {
	Arena   string `json:"arena"`
	Symbol  string `json:"symbol"`
	Horizon int    `json:"horizon"`
}

func (c *Client) Forecast(ctx context.Context, arena, symbol string, horizon int) (models.ForecastResult, error) {
	var res models.ForecastResult
	err := c.call(ctx, xhttp.MethodPost, "/v1/forecast", forecastBody{arena, symbol, horizon}, &res)
	return res, err
}

type strategyBody struct {
	Arena        string        `json:"arena"`
	Symbol       string        `json:"symbol"`
	Horizon      int           `json:"horizon"`
	LookbackDays int           `json:"lookback_days"`
	Enter        []models.Rule `json:"enter"`
	Exit         []models.Rule `json:"exit"`
}

func (c *Client) EvaluateStrategy(ctx context.Context, spec models.StrategySpec) (models.StrategyResult, error) {
	body := strategyBody{
		Arena:        spec.Arena,
		Symbol:       spec.Symbol,
		Horizon:      spec.Horizon,
		LookbackDays: spec.LookbackDays,
		Enter:        nonNil(spec.Enter),
		Exit:         nonNil(spec.Exit),
	}
	var res models.StrategyResult
	err := c.call(ctx, xhttp.MethodPost, "/v1/strategy/eval", body, &res)
	return res, err
}

func (c *Client) CreateShare(ctx context.Context, payload models.SharePayload) (models.ShareLink, error) {
	var link models.ShareLink
	err := c.call(ctx, xhttp.MethodPost, "/v1/share/create", payload, &link)
	return link, err
}

func (c *Client) GetShare(ctx context.Context, token string) (models.SharePayload, error) {
	var p models.SharePayload
	err := c.call(ctx, xhttp.MethodGet, "/v1/share/"+url.PathEscape(token), nil, &p)
	return p, err
}

func (c *Client) PublicSLO(ctx context.Context) (models.SLOReport, error) {
	var r models.SLOReport
	err := c.call(ctx, xhttp.MethodGet, "/v1/public/slo.json", nil, &r)
	return r, err
}

func (c *Client) PublicAccuracy(ctx context.Context) (models.AccuracyReport, error) {
	var r models.AccuracyReport
	err := c.call(ctx, xhttp.MethodGet, "/v1/public/accuracy.json", nil, &r)
	return r, err
}

func (c *Client) PublicPlans(ctx context.Context) (models.PlanCatalogue, error) {
	var r models.PlanCatalogue
	err := c.call(ctx, xhttp.MethodGet, "/v1/public/plans.json", nil, &r)
	return r, err
}

func nonNil(r []models.Rule) []models.Rule {
	if r == nil {
		return []models.Rule{}
	}
	return r
}
