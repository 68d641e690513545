package domain

import (
	"errors"
	"time"
)

const (
	PointsTypeAdReward        = "adReward"
	PointsTypeAdminAdjustment = "adminAdjustment"
	PointsTypeSpend           = "spend"
	PointsTypePurchase        = "purchase"

	DailyAdLimit   = 10
	AdRewardPoints = 1
)

var (
	MessageSuccessGetPointsBalance    = "points balance retrieved successfully"
	MessageSuccessGetPointsHistory    = "points transactions retrieved successfully"
	MessageSuccessSubmitPointsRequest = "points purchase request submitted successfully"
	MessageSuccessGetPointsRequests   = "points purchase requests retrieved successfully"
	MessageSuccessApprovePointsReq    = "points purchase request approved"
	MessageSuccessRejectPointsReq     = "points purchase request rejected"
	MessageSuccessPurchaseDiamonds    = "diamonds purchased successfully"
	MessageSuccessGetDiamondHistory   = "diamond purchases retrieved successfully"
	MessageSuccessClaimAdReward       = "ad reward claimed successfully"
	MessageSuccessGetDailyAdCount     = "daily ad count retrieved successfully"
	MessageSuccessAdjustPoints        = "points adjusted successfully"

	MessageFailedGetPointsBalance    = "failed to retrieve points balance"
	MessageFailedGetPointsHistory    = "failed to retrieve points transactions"
	MessageFailedSubmitPointsRequest = "failed to submit points purchase request"
	MessageFailedGetPointsRequests   = "failed to retrieve points purchase requests"
	MessageFailedApprovePointsReq    = "failed to approve points purchase request"
	MessageFailedRejectPointsReq     = "failed to reject points purchase request"
	MessageFailedPurchaseDiamonds    = "failed to purchase diamonds"
	MessageFailedGetDiamondHistory   = "failed to retrieve diamond purchases"
	MessageFailedClaimAdReward       = "failed to claim ad reward"
	MessageFailedGetDailyAdCount     = "failed to retrieve daily ad count"
	MessageFailedAdjustPoints        = "failed to adjust points"

	ErrInsufficientPoints = errors.New("insufficient points")
	// "Daily ad limit reached" is matched verbatim by clients, keep the wording.
	ErrDailyAdLimit      = errors.New("Daily ad limit reached")
	ErrInvalidBdtAmount  = errors.New("bdt amount must be greater than zero")
	ErrRequestNotFound   = errors.New("points purchase request not found")
)

type (
	SubmitPointsPurchaseRequest struct {
		BdtAmount     int64  `json:"bdt_amount" validate:"required"`
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	ResolvePointsRequest struct {
		RequestID string `json:"request_id" validate:"required,uuid"`
	}

	PurchaseDiamondsRequest struct {
		PackageName   string `json:"package_name" validate:"required"`
		Quantity      int64  `json:"quantity" validate:"required,min=1"`
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	ClaimAdRewardRequest struct {
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	AdjustPointsRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		Amount int64  `json:"amount" validate:"required"`
		Note   string `json:"note"`
	}

	PointsTransaction struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		Amount          int64     `json:"amount"`
		TransactionType string    `json:"transaction_type"`
		Metadata        string    `json:"metadata"`
		CreatedAt       time.Time `json:"created_at"`
	}

	PointsPurchaseRequest struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		BdtAmount     int64     `json:"bdt_amount"`
		Amount        int64     `json:"amount"`
		TransactionID string    `json:"transaction_id"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"created_at"`
	}

	DiamondPurchase struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		PackageName     string    `json:"package_name"`
		Quantity        int64     `json:"quantity"`
		PointsDeducted  int64     `json:"points_deducted"`
		DiamondsAwarded int64     `json:"diamonds_awarded"`
		CreatedAt       time.Time `json:"created_at"`
	}

	PointsBalanceResponse struct {
		Balance int64 `json:"balance"`
	}

	DailyAdCountResponse struct {
		Count int64 `json:"count"`
		Limit int64 `json:"limit"`
	}
)
