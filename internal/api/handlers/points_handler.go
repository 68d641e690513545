package handlers

import (
	"topup-backend/domain"
	"topup-backend/internal/api/presenters"
	"topup-backend/pkg/points"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PointsHandler interface {
		GetBalance(c *fiber.Ctx) error
		GetCallerTransactions(c *fiber.Ctx) error
		SubmitPurchaseRequest(c *fiber.Ctx) error
		GetCallerPurchaseRequests(c *fiber.Ctx) error
		PurchaseDiamonds(c *fiber.Ctx) error
		GetCallerDiamondPurchases(c *fiber.Ctx) error
		ClaimAdReward(c *fiber.Ctx) error
		GetDailyAdCount(c *fiber.Ctx) error

		GetAllTransactions(c *fiber.Ctx) error
		GetAllPurchaseRequests(c *fiber.Ctx) error
		GetAllDiamondPurchases(c *fiber.Ctx) error
		ApprovePurchaseRequest(c *fiber.Ctx) error
		RejectPurchaseRequest(c *fiber.Ctx) error
		AdjustPoints(c *fiber.Ctx) error
	}

	pointsHandler struct {
		pointsService points.PointsService
		validator     *validator.Validate
	}
)

func NewPointsHandler(pointsService points.PointsService, validator *validator.Validate) PointsHandler {
	return &pointsHandler{
		pointsService: pointsService,
		validator:     validator,
	}
}

func (h *pointsHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.pointsService.GetBalance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointsBalance, err)
	}
	return presenters.SuccessResponse(c, domain.PointsBalanceResponse{Balance: balance}, fiber.StatusOK, domain.MessageSuccessGetPointsBalance)
}

func (h *pointsHandler) GetCallerTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	transactions, err := h.pointsService.GetCallerTransactions(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointsHistory, err)
	}
	return presenters.SuccessResponse(c, transactions, fiber.StatusOK, domain.MessageSuccessGetPointsHistory)
}

func (h *pointsHandler) SubmitPurchaseRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitPointsPurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitPointsRequest, err)
	}

	request, err := h.pointsService.SubmitPurchaseRequest(c.Context(), *req, userID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrDuplicateTransactionID {
			code = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedSubmitPointsRequest, err)
	}
	return presenters.SuccessResponse(c, request, fiber.StatusCreated, domain.MessageSuccessSubmitPointsRequest)
}

func (h *pointsHandler) GetCallerPurchaseRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	requests, err := h.pointsService.GetCallerPurchaseRequests(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointsRequests, err)
	}
	return presenters.SuccessResponse(c, requests, fiber.StatusOK, domain.MessageSuccessGetPointsRequests)
}

func (h *pointsHandler) PurchaseDiamonds(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.PurchaseDiamondsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPurchaseDiamonds, err)
	}

	purchase, err := h.pointsService.PurchaseDiamonds(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPurchaseDiamonds, err)
	}
	return presenters.SuccessResponse(c, purchase, fiber.StatusCreated, domain.MessageSuccessPurchaseDiamonds)
}

func (h *pointsHandler) GetCallerDiamondPurchases(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	purchases, err := h.pointsService.GetCallerDiamondPurchases(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDiamondHistory, err)
	}
	return presenters.SuccessResponse(c, purchases, fiber.StatusOK, domain.MessageSuccessGetDiamondHistory)
}

func (h *pointsHandler) ClaimAdReward(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.ClaimAdRewardRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClaimAdReward, err)
	}

	if err := h.pointsService.ClaimAdReward(c.Context(), *req, userID); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrDailyAdLimit {
			code = fiber.StatusTooManyRequests
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedClaimAdReward, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClaimAdReward)
}

func (h *pointsHandler) GetDailyAdCount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.pointsService.GetDailyAdCount(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDailyAdCount, err)
	}
	return presenters.SuccessResponse(c, domain.DailyAdCountResponse{
		Count: count,
		Limit: domain.DailyAdLimit,
	}, fiber.StatusOK, domain.MessageSuccessGetDailyAdCount)
}

func (h *pointsHandler) GetAllTransactions(c *fiber.Ctx) error {
	transactions, err := h.pointsService.GetAllTransactions(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointsHistory, err)
	}
	return presenters.SuccessResponse(c, transactions, fiber.StatusOK, domain.MessageSuccessGetPointsHistory)
}

func (h *pointsHandler) GetAllPurchaseRequests(c *fiber.Ctx) error {
	requests, err := h.pointsService.GetAllPurchaseRequests(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointsRequests, err)
	}
	return presenters.SuccessResponse(c, requests, fiber.StatusOK, domain.MessageSuccessGetPointsRequests)
}

func (h *pointsHandler) GetAllDiamondPurchases(c *fiber.Ctx) error {
	purchases, err := h.pointsService.GetAllDiamondPurchases(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDiamondHistory, err)
	}
	return presenters.SuccessResponse(c, purchases, fiber.StatusOK, domain.MessageSuccessGetDiamondHistory)
}

func (h *pointsHandler) ApprovePurchaseRequest(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.ResolvePointsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApprovePointsReq, err)
	}

	approved, err := h.pointsService.ApprovePurchaseRequest(c.Context(), adminID, req.RequestID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedApprovePointsReq, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"approved": approved}, fiber.StatusOK, domain.MessageSuccessApprovePointsReq)
}

func (h *pointsHandler) RejectPurchaseRequest(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.ResolvePointsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectPointsReq, err)
	}

	rejected, err := h.pointsService.RejectPurchaseRequest(c.Context(), adminID, req.RequestID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedRejectPointsReq, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"rejected": rejected}, fiber.StatusOK, domain.MessageSuccessRejectPointsReq)
}

func (h *pointsHandler) AdjustPoints(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.AdjustPointsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustPoints, err)
	}

	if err := h.pointsService.AdjustPoints(c.Context(), adminID, *req); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedAdjustPoints, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAdjustPoints)
}
