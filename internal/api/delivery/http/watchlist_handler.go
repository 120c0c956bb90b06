package http

import (
	"net/http"

	"finis-oculus/internal/api/delivery/middleware"
	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/service"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/utils"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles the signed-in user's watchlist.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.POST("/details", h.Details)
	g.DELETE("/:ticker", h.Remove)
}

// List godoc
// @Summary List watchlist tickers
// @Tags watchlist
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.WatchlistResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	res, err := h.watchlistService.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to list watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get watchlist"})
	}
	return c.JSON(http.StatusOK, res)
}

// Add godoc
// @Summary Add a ticker to the watchlist
// @Description Adding a ticker already present is a no-op
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body  body    dto.AddWatchlistRequest  true  "Ticker to add"
// @Success 201 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	var req dto.AddWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ticker symbol"})
	}

	ctx := c.Request().Context()
	userID := middleware.UserID(c)
	ticker := utils.NormalizeTicker(req.Ticker)
	if err := h.watchlistService.Add(ctx, userID, ticker); err != nil {
		return respondError(c, h.logger, err, ticker)
	}

	res, err := h.watchlistService.List(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list watchlist after add", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get watchlist"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Remove godoc
// @Summary Remove a ticker from the watchlist
// @Description Removing an absent ticker succeeds
// @Tags watchlist
// @Produce  json
// @Security BearerAuth
// @Param   ticker  path    string  true  "Ticker symbol"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{ticker} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	ticker := utils.NormalizeTicker(c.Param("ticker"))
	if err := h.watchlistService.Remove(c.Request().Context(), middleware.UserID(c), ticker); err != nil {
		return respondError(c, h.logger, err, ticker)
	}
	return c.NoContent(http.StatusNoContent)
}

// Details godoc
// @Summary Snapshots for a set of tickers
// @Description One snapshot per ticker; fails as a whole when any ticker fails
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body  body    dto.WatchlistDetailsRequest  true  "Tickers"
// @Success 200 {array} dto.StockSnapshot
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/details [post]
func (h *WatchlistHandler) Details(c echo.Context) error {
	var req dto.WatchlistDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	snapshots, err := h.watchlistService.Details(c.Request().Context(), req.Tickers)
	if err != nil {
		return respondError(c, h.logger, err, "the requested tickers")
	}
	return c.JSON(http.StatusOK, snapshots)
}
