package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProxyHandler forwards requests under its prefix to the analytics
// backend. Only Content-Type and Authorization are forwarded; the
// upstream response is returned as is.
type ProxyHandler struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewProxyHandler creates a proxy to baseURL for requests under prefix.
func NewProxyHandler(baseURL, prefix string, timeout time.Duration, logger *logger.Logger) *ProxyHandler {
	return &ProxyHandler{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     prefix,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// RegisterRoutes registers the catch-all route on the Echo instance.
func (h *ProxyHandler) RegisterRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.Any(h.prefix+"/*", h.Forward, m...)
}

// Forward relays the request upstream. Transport failures are reported
// as 502 with the JSON error envelope.
func (h *ProxyHandler) Forward(c echo.Context) error {
	req := c.Request()
	target := h.baseURL + "/" + strings.TrimPrefix(c.Param("*"), "/")
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}

	var body io.Reader
	if req.Body != nil && req.Body != http.NoBody {
		body = req.Body
	}
	upstreamReq, err := http.NewRequestWithContext(req.Context(), req.Method, target, body)
	if err != nil {
		h.logger.ErrorContext(req.Context(), "Failed to build proxy request", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Proxy request failed"})
	}

	contentType := req.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	upstreamReq.Header.Set(echo.HeaderContentType, contentType)
	if authz := req.Header.Get(echo.HeaderAuthorization); authz != "" {
		upstreamReq.Header.Set(echo.HeaderAuthorization, authz)
	}

	resp, err := h.httpClient.Do(upstreamReq)
	if err != nil {
		h.logger.ErrorContext(req.Context(), "API proxy error", logger.ErrorField(err), logger.StringField("target", target))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Proxy request failed"})
	}
	defer resp.Body.Close()

	header := c.Response().Header()
	for k, values := range resp.Header {
		for _, v := range values {
			header.Add(k, v)
		}
	}
	c.Response().WriteHeader(resp.StatusCode)
	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		h.logger.WarnContext(req.Context(), "Proxy response copy interrupted", logger.ErrorField(err))
	}
	return nil
}
