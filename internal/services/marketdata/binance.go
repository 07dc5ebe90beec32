package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"LipeCore/internal/domain/models"

	binance "github.com/binance/binance-connector-go"
)

const (
	defaultBinanceBaseURL = "https://api.binance.com"
	defaultFetchTimeout   = 3 * time.Second
	maxKlinesLimit        = 1000
	dailyInterval         = "1d"
)

// BinanceOption configures BinanceSource.
type BinanceOption func(*BinanceConfig)

// BinanceConfig holds Binance REST settings.
type BinanceConfig struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	Timeout   time.Duration
}

// WithBinanceBaseURL overrides the REST endpoint.
func WithBinanceBaseURL(u string) BinanceOption {
	return func(c *BinanceConfig) {
		if u != "" {
			c.BaseURL = u
		}
	}
}

// WithBinanceCredentials sets API credentials. Klines are public; keys only raise rate limits.
func WithBinanceCredentials(apiKey, secretKey string) BinanceOption {
	return func(c *BinanceConfig) {
		c.APIKey = apiKey
		c.SecretKey = secretKey
	}
}

// WithFetchTimeout sets the ceiling for one klines request.
func WithFetchTimeout(d time.Duration) BinanceOption {
	return func(c *BinanceConfig) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// BinanceSource reads daily candles from the Binance spot REST API.
type BinanceSource struct {
	client  *binance.Client
	timeout time.Duration
}

func NewBinanceSource(opts ...BinanceOption) *BinanceSource {
	cfg := &BinanceConfig{
		BaseURL: defaultBinanceBaseURL,
		Timeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := binance.NewClient(cfg.APIKey, cfg.SecretKey, cfg.BaseURL)
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &BinanceSource{client: client, timeout: cfg.Timeout}
}

// DailyCloses issues a single klines request. No retries.
func (s *BinanceSource) DailyCloses(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	if limit <= 0 || limit > maxKlinesLimit {
		return nil, fmt.Errorf("binance klines: limit %d out of range", limit)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	klines, err := s.client.NewKlinesService().
		Symbol(NormalizeSymbol(symbol)).
		Interval(dailyInterval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	out := make([]models.PricePoint, 0, len(klines))
	for _, k := range klines {
		if k == nil {
			continue
		}
		c, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("binance klines: parse close %q: %w", k.Close, err)
		}
		out = append(out, models.PricePoint{Timestamp: int64(k.OpenTime), Close: c})
	}
	if err := validateSeries(out); err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}
	return out, nil
}

// NormalizeSymbol turns "btc/usdt" or "BTC-USDT" into "BTCUSDT".
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.NewReplacer("/", "", "-", "").Replace(s)
}
