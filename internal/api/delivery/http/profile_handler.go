package http

import (
	"net/http"

	"finis-oculus/internal/api/delivery/middleware"
	"finis-oculus/internal/api/service"
	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the signed-in user's profile.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// RegisterRoutes registers the profile routes to the Echo group.
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.Get)
}

// Get godoc
// @Summary Get the signed-in user's profile
// @Description watchlistLimit is 0 for premium accounts
// @Tags profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to get profile", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get profile"})
	}
	return c.JSON(http.StatusOK, profile)
}
