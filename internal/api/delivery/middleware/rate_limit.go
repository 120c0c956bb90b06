package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor returns the echo IPExtractor that identifies clients
// for rate limiting. With no trusted proxies the connection address is
// used and forwarding headers are ignored. Otherwise X-Real-IP is honored
// only on connections from the given CIDRs.
func ClientIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromRealIPHeader(options...), nil
}

// RateLimit throttles requests per client IP as resolved by the echo
// IPExtractor. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientIP := c.RealIP()

			ctx := c.Request().Context()
			res, err := limiter.Allow(ctx, clientIP)
			if err != nil {
				log.ErrorContext(ctx, "Rate limit check failed", logger.ErrorField(err), logger.StringField("client_ip", clientIP))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retryAfter := int64(time.Until(res.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Rate limit exceeded. Try again later."})
			}
			return next(c)
		}
	}
}
