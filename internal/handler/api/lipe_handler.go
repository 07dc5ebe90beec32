package api

import (
	"errors"
	"time"

	models "LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	"LipeCore/internal/service/ratelimit"
	"LipeCore/internal/usecase"
	xhttp "LipeCore/pkg/http"
	xlogger "LipeCore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LipeHandler serves the forecast, strategy, share and public status routes.
type LipeHandler struct {
	logger   *xlogger.Logger
	forecast *usecase.ForecastUseCase
	strategy *usecase.StrategyUseCase
	shares   *usecase.ShareRegistry
	limiter  *ratelimit.Limiter
	now      func() time.Time
}

func NewLipeHandler(
	logger *xlogger.Logger,
	forecast *usecase.ForecastUseCase,
	strategy *usecase.StrategyUseCase,
	shares *usecase.ShareRegistry,
	limiter *ratelimit.Limiter,
) *LipeHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &LipeHandler{
		logger:   logger,
		forecast: forecast,
		strategy: strategy,
		shares:   shares,
		limiter:  limiter,
		now:      time.Now,
	}
}

// SetClock overrides the clock used for status timestamps.
func (h *LipeHandler) SetClock(now func() time.Time) {
	if now != nil {
		h.now = now
	}
}

func (h *LipeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/v1", RateLimit(h.limiter, h.logger))
	g.POST("/forecast", h.Forecast)
	g.POST("/strategy/eval", h.StrategyEval)
	g.POST("/share/create", h.ShareCreate)
	g.GET("/share/:token", h.ShareGet)

	g.GET("/public/slo.json", h.PublicSLO)
	g.GET("/public/accuracy.json", h.PublicAccuracy)
	g.GET("/public/plans.json", h.PublicPlans)
}

func (h *LipeHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecast.Project(c.Request().Context(), req.Arena, req.Symbol, *req.Horizon)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("forecast error: %v", err).WithError(err))
	}
	return xhttp.ResultResponse(c, res)
}

func (h *LipeHandler) StrategyEval(c echo.Context) error {
	req := &models.StrategyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.strategy.Evaluate(c.Request().Context(), req.Spec())
	if err != nil {
		h.logger.Error("strategy usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("backtest error: %v", err).WithError(err))
	}
	return xhttp.ResultResponse(c, res)
}

func (h *LipeHandler) ShareCreate(c echo.Context) error {
	req := &models.ShareCreateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	link, err := h.shares.Create(c.Request().Context(), req.Payload(), *req.TTLHours)
	if errors.Is(err, drepo.ErrShareStoreFull) {
		h.logger.Warn("share store full")
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("share capacity reached"))
	}
	if err != nil {
		h.logger.Error("share create error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("share error").WithError(err))
	}
	h.logger.Debug("share created",
		xlogger.String("symbol", req.Symbol),
		xlogger.String("user", c.Request().Header.Get("x-user-email")),
	)
	return xhttp.ResultResponse(c, link)
}

func (h *LipeHandler) ShareGet(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("token is required"))
	}

	payload, err := h.shares.Get(c.Request().Context(), token)
	if errors.Is(err, usecase.ErrShareNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("not found / expired"))
	}
	if err != nil {
		h.logger.Error("share get error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("share error").WithError(err))
	}
	return xhttp.ResultResponse(c, payload)
}
