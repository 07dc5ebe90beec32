package models

// ServiceName is reported by the health and status endpoints.
const ServiceName = "HIS • LIPE Core"

type Health struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
	TS   string `json:"ts"`
}

type SLOReport struct {
	Service       string  `json:"service"`
	P95MsForecast int     `json:"p95_ms_forecast"`
	Uptime7d      float64 `json:"uptime_7d"`
	UpdatedAt     string  `json:"updated_at"`
}

// ArenaAccuracy holds the published accuracy figures of one arena. Keys vary per arena.
type ArenaAccuracy map[string]float64

type AccuracyReport struct {
	Crypto    ArenaAccuracy `json:"Crypto"`
	Sports    ArenaAccuracy `json:"Sports"`
	Lottery   ArenaAccuracy `json:"Lottery"`
	UpdatedAt string        `json:"updated_at"`
}

type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PriceUSDMonth float64  `json:"price_usd_month"`
	Features      []string `json:"features"`
}

type PlanCatalogue struct {
	Plans     []Plan `json:"plans"`
	UpdatedAt string `json:"updated_at"`
}
