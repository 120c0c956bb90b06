package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/service"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/utils"

	"github.com/labstack/echo/v4"
)

// MarketHandler serves the finance data shaping endpoints.
type MarketHandler struct {
	marketService service.MarketService
	logger        *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService service.MarketService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{marketService: marketService, logger: logger}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stocks/:ticker", h.GetStockDetail)
	g.GET("/stocks/:ticker/chart", h.GetChart)
	g.GET("/stocks/:ticker/news", h.GetNews)
	g.GET("/validate/:ticker", h.ValidateTicker)
}

// GetChart godoc
// @Summary Get a price chart
// @Description Historical prices for a range plus the current quote
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string  true    "Ticker symbol"
// @Param   range   query   string  false   "1D, 1W, 1M, 6M, YTD, 1Y, 5Y or Max"  default(6M)
// @Success 200 {object} dto.ChartResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{ticker}/chart [get]
func (h *MarketHandler) GetChart(c echo.Context) error {
	ticker := utils.NormalizeTicker(c.Param("ticker"))
	rng := c.QueryParam("range")
	if rng == "" {
		rng = common.Range6M
	}

	chart, err := h.marketService.GetChart(c.Request().Context(), ticker, rng)
	if err != nil {
		return respondError(c, h.logger, err, ticker)
	}
	return c.JSON(http.StatusOK, chart)
}

// GetStockDetail godoc
// @Summary Get stock detail
// @Description Quote, key stats, ratios, indicators, news, sentiment and AI summary
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string  true    "Ticker symbol"
// @Success 200 {object} dto.StockDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{ticker} [get]
func (h *MarketHandler) GetStockDetail(c echo.Context) error {
	ticker := utils.NormalizeTicker(c.Param("ticker"))

	detail, err := h.marketService.GetStockDetail(c.Request().Context(), ticker)
	if err != nil {
		return respondError(c, h.logger, err, ticker)
	}
	return c.JSON(http.StatusOK, detail)
}

// GetNews godoc
// @Summary Get stock news
// @Description Paged news for a ticker, 10 items per page
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string  true    "Ticker symbol"
// @Param   page    query   int     false   "Page number"  default(1)
// @Param   filter  query   string  false   "all, news or filings"  default(all)
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{ticker}/news [get]
func (h *MarketHandler) GetNews(c echo.Context) error {
	ticker := utils.NormalizeTicker(c.Param("ticker"))

	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid page"})
		}
		page = n
	}

	news, err := h.marketService.GetNews(c.Request().Context(), ticker, page, c.QueryParam("filter"))
	if err != nil {
		return respondError(c, h.logger, err, ticker)
	}
	return c.JSON(http.StatusOK, news)
}

// ValidateTicker godoc
// @Summary Validate a ticker
// @Description Checks that the market data provider quotes the ticker
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string  true    "Ticker symbol"
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /validate/{ticker} [get]
func (h *MarketHandler) ValidateTicker(c echo.Context) error {
	ticker := utils.NormalizeTicker(c.Param("ticker"))

	err := h.marketService.ValidateTicker(c.Request().Context(), ticker)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto.ValidateResponse{Message: fmt.Sprintf("Ticker %s is valid.", ticker)})
	case errors.Is(err, service.ErrInvalidTicker):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ticker symbol"})
	case errors.Is(err, service.ErrStockNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticker not found or invalid"})
	default:
		h.logger.ErrorContext(c.Request().Context(), "Failed to validate ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Market data provider unavailable"})
	}
}
