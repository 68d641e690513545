package handlers

import (
	"topup-backend/domain"
	"topup-backend/internal/api/presenters"
	"topup-backend/pkg/admin"

	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetDashboard(c *fiber.Ctx) error
		GetAdRewardsAnalytics(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
	}
)

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandler{adminService: adminService}
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.adminService.GetDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, dashboard, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *adminHandler) GetAdRewardsAnalytics(c *fiber.Ctx) error {
	analytics, err := h.adminService.GetAdRewardsAnalytics(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAdAnalytics, err)
	}
	return presenters.SuccessResponse(c, analytics, fiber.StatusOK, domain.MessageSuccessGetAdAnalytics)
}
