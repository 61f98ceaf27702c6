package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/brainswarm/booking-api/internal/api/dto"
	"github.com/brainswarm/booking-api/internal/domain"
)

// StatsUseCase reads the admin dashboard.
type StatsUseCase interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
}

// AdminHandler serves administrator endpoints. Routes must sit behind the
// admin guard.
type AdminHandler struct {
	admin StatsUseCase
}

func NewAdminHandler(admin StatsUseCase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewAdminStatsResponse(stats))
}
