package handlers

import (
	"topup-backend/domain"
	"topup-backend/internal/api/presenters"
	"topup-backend/pkg/wallet"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WalletHandler interface {
		SubmitTopUp(c *fiber.Ctx) error
		UploadProof(c *fiber.Ctx) error
		GetCallerTransactions(c *fiber.Ctx) error
		GetBalance(c *fiber.Ctx) error
		GetAllTransactions(c *fiber.Ctx) error
		ApproveTopUp(c *fiber.Ctx) error
		RejectTopUp(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
		validator     *validator.Validate
	}
)

func NewWalletHandler(walletService wallet.WalletService, validator *validator.Validate) WalletHandler {
	return &walletHandler{
		walletService: walletService,
		validator:     validator,
	}
}

func (h *walletHandler) SubmitTopUp(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitTopUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitTopUp, err)
	}

	transaction, err := h.walletService.SubmitTopUp(c.Context(), *req, userID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrDuplicateTransactionID {
			code = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedSubmitTopUp, err)
	}
	return presenters.SuccessResponse(c, transaction, fiber.StatusCreated, domain.MessageSuccessSubmitTopUp)
}

func (h *walletHandler) UploadProof(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	proof, err := c.FormFile("proof")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadProofRequest{
		TransactionID: c.FormValue("transaction_id"),
		Proof:         proof,
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadProof, err)
	}

	proofURL, err := h.walletService.UploadProof(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadProof, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"proof_url": proofURL}, fiber.StatusOK, domain.MessageSuccessUploadProof)
}

func (h *walletHandler) GetCallerTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	transactions, err := h.walletService.GetCallerTransactions(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTransactions, err)
	}
	return presenters.SuccessResponse(c, transactions, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *walletHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.walletService.GetBalance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBalance, err)
	}
	return presenters.SuccessResponse(c, domain.BalanceResponse{Balance: balance}, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *walletHandler) GetAllTransactions(c *fiber.Ctx) error {
	transactions, err := h.walletService.GetAllTransactions(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTransactions, err)
	}
	return presenters.SuccessResponse(c, transactions, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *walletHandler) ApproveTopUp(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.ResolveTopUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApproveTopUp, err)
	}

	approved, err := h.walletService.ApproveTopUp(c.Context(), adminID, req.TransactionID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedApproveTopUp, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"approved": approved}, fiber.StatusOK, domain.MessageSuccessApproveTopUp)
}

func (h *walletHandler) RejectTopUp(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.ResolveTopUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectTopUp, err)
	}

	rejected, err := h.walletService.RejectTopUp(c.Context(), adminID, req.TransactionID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedRejectTopUp, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"rejected": rejected}, fiber.StatusOK, domain.MessageSuccessRejectTopUp)
}
