package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	PaymentMethodBkash = "bkash"
	PaymentMethodNagad = "nagad"

	TransactionStatusPending  = "pending"
	TransactionStatusApproved = "approved"
	TransactionStatusRejected = "rejected"
)

var (
	MessageSuccessSubmitTopUp      = "top-up transaction submitted successfully"
	MessageSuccessGetTransactions  = "transactions retrieved successfully"
	MessageSuccessGetBalance       = "balance retrieved successfully"
	MessageSuccessApproveTopUp     = "top-up transaction approved"
	MessageSuccessRejectTopUp      = "top-up transaction rejected"
	MessageSuccessUploadProof      = "payment proof uploaded successfully"

	MessageFailedSubmitTopUp     = "failed to submit top-up transaction"
	MessageFailedGetTransactions = "failed to retrieve transactions"
	MessageFailedGetBalance      = "failed to retrieve balance"
	MessageFailedApproveTopUp    = "failed to approve top-up transaction"
	MessageFailedRejectTopUp     = "failed to reject top-up transaction"
	MessageFailedUploadProof     = "failed to upload payment proof"

	// "already used" is matched verbatim by clients, keep the wording.
	ErrDuplicateTransactionID = errors.New("transaction ID already used")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInsufficientBalance    = errors.New("insufficient wallet balance")
	ErrTransactionNotFound    = errors.New("transaction not found")
)

type (
	SubmitTopUpRequest struct {
		Amount        int64  `json:"amount" validate:"required"`
		PaymentMethod string `json:"payment_method" validate:"required,oneof=bkash nagad"`
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	UploadProofRequest struct {
		TransactionID string                `json:"transaction_id" form:"transaction_id" validate:"required"`
		Proof         *multipart.FileHeader `json:"proof" form:"proof" validate:"required"`
	}

	ResolveTopUpRequest struct {
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	WalletTransaction struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		Amount        int64     `json:"amount"`
		PaymentMethod string    `json:"payment_method"`
		TransactionID string    `json:"transaction_id"`
		Status        string    `json:"status"`
		ProofURL      string    `json:"proof_url,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	BalanceResponse struct {
		Balance int64 `json:"balance"`
	}
)
