package points

import (
	"context"
	"errors"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/user"
	"topup-backend/pkg/wallet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PointsRepository interface {
		Balance(ctx context.Context, userID string) (int64, error)
		CreateAdjustment(ctx context.Context, adminID string, transaction *entities.PointsTransaction) error
		ListTransactionsByUser(ctx context.Context, userID string) ([]*entities.PointsTransaction, error)
		ListAllTransactions(ctx context.Context) ([]*entities.PointsTransaction, error)

		CreatePurchaseRequest(ctx context.Context, request *entities.PointsPurchaseRequest) error
		ResolvePurchaseRequest(ctx context.Context, adminID string, requestID string, approve bool) (bool, error)
		ListRequestsByUser(ctx context.Context, userID string) ([]*entities.PointsPurchaseRequest, error)
		ListAllRequests(ctx context.Context) ([]*entities.PointsPurchaseRequest, error)

		CreateDiamondPurchase(ctx context.Context, purchase *entities.DiamondPurchase, spend *entities.PointsTransaction) error
		ListDiamondPurchasesByUser(ctx context.Context, userID string) ([]*entities.DiamondPurchase, error)
		ListAllDiamondPurchases(ctx context.Context) ([]*entities.DiamondPurchase, error)

		ClaimAdReward(ctx context.Context, reward *entities.PointsTransaction, dayStart time.Time) error
		CountAdRewardsSince(ctx context.Context, userID string, dayStart time.Time) (int64, error)
	}

	pointsRepository struct {
		db *gorm.DB
	}
)

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func pointsBalanceTx(tx *gorm.DB, userID string) (int64, error) {
	var balance int64
	if err := tx.Model(&entities.PointsTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *pointsRepository) Balance(ctx context.Context, userID string) (int64, error) {
	return pointsBalanceTx(r.db.WithContext(ctx), userID)
}

func (r *pointsRepository) CreateAdjustment(ctx context.Context, adminID string, transaction *entities.PointsTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}
		return tx.Create(transaction).Error
	})
}

func (r *pointsRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]*entities.PointsTransaction, error) {
	var transactions []*entities.PointsTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *pointsRepository) ListAllTransactions(ctx context.Context) ([]*entities.PointsTransaction, error) {
	var transactions []*entities.PointsTransaction
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *pointsRepository) CreatePurchaseRequest(ctx context.Context, request *entities.PointsPurchaseRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := wallet.TransactionIDInUse(tx, request.TransactionID)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrDuplicateTransactionID
		}
		return tx.Create(request).Error
	})
}

// ResolvePurchaseRequest claims the pending request, re-checks the wallet
// balance at approval time and appends the purchase ledger entry, all in one
// transaction. The row is locked while pending is still the status, and the
// transition itself is a conditional update, so two concurrent resolutions
// cannot both claim it. Returns false when the request is not pending or the
// balance no longer covers it.
func (r *pointsRepository) ResolvePurchaseRequest(ctx context.Context, adminID string, requestID string, approve bool) (bool, error) {
	resolved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		var request entities.PointsPurchaseRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", requestID, domain.TransactionStatusPending).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		status := domain.TransactionStatusRejected
		if approve {
			// Balance may have changed since submission; serialize against
			// the user's other debits before re-reading it.
			if err := user.LockTx(tx, request.UserID.String()); err != nil {
				return err
			}
			balance, err := wallet.BalanceTx(tx, request.UserID.String())
			if err != nil {
				return err
			}
			if balance < request.BdtAmount {
				return nil
			}
			status = domain.TransactionStatusApproved
		}

		res := tx.Model(&entities.PointsPurchaseRequest{}).
			Where("id = ? AND status = ?", request.ID, domain.TransactionStatusPending).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if approve {
			if err := tx.Create(newPurchaseTransaction(&request)).Error; err != nil {
				return err
			}
		}
		resolved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return resolved, nil
}

func (r *pointsRepository) ListRequestsByUser(ctx context.Context, userID string) ([]*entities.PointsPurchaseRequest, error) {
	var requests []*entities.PointsPurchaseRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *pointsRepository) ListAllRequests(ctx context.Context) ([]*entities.PointsPurchaseRequest, error) {
	var requests []*entities.PointsPurchaseRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateDiamondPurchase settles instantly: the purchase row and the spend
// ledger entry are written together or not at all.
func (r *pointsRepository) CreateDiamondPurchase(ctx context.Context, purchase *entities.DiamondPurchase, spend *entities.PointsTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.LockTx(tx, purchase.UserID.String()); err != nil {
			return err
		}

		balance, err := pointsBalanceTx(tx, purchase.UserID.String())
		if err != nil {
			return err
		}
		if balance < purchase.PointsDeducted {
			return domain.ErrInsufficientPoints
		}

		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		return tx.Create(spend).Error
	})
}

func (r *pointsRepository) ListDiamondPurchasesByUser(ctx context.Context, userID string) ([]*entities.DiamondPurchase, error) {
	var purchases []*entities.DiamondPurchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *pointsRepository) ListAllDiamondPurchases(ctx context.Context) ([]*entities.DiamondPurchase, error) {
	var purchases []*entities.DiamondPurchase
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ClaimAdReward counts the day's rewards and appends inside one transaction,
// so concurrent claims cannot exceed the cap.
func (r *pointsRepository) ClaimAdReward(ctx context.Context, reward *entities.PointsTransaction, dayStart time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.PointsTransaction{}).
			Where("user_id = ? AND transaction_type = ? AND created_at >= ?",
				reward.UserID, domain.PointsTypeAdReward, dayStart).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= domain.DailyAdLimit {
			return domain.ErrDailyAdLimit
		}
		return tx.Create(reward).Error
	})
}

func (r *pointsRepository) CountAdRewardsSince(ctx context.Context, userID string, dayStart time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.PointsTransaction{}).
		Where("user_id = ? AND transaction_type = ? AND created_at >= ?",
			userID, domain.PointsTypeAdReward, dayStart).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
