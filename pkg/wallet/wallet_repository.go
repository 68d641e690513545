package wallet

import (
	"context"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	WalletRepository interface {
		CreateTopUp(ctx context.Context, topUp *entities.WalletTopUpTransaction) error
		GetByTransactionID(ctx context.Context, transactionID string) (*entities.WalletTopUpTransaction, error)
		ResolveTopUp(ctx context.Context, adminID string, transactionID string, status string) (bool, error)
		SetProofURL(ctx context.Context, userID uuid.UUID, transactionID string, proofURL string) error
		ListByUser(ctx context.Context, userID string) ([]*entities.WalletTopUpTransaction, error)
		ListAll(ctx context.Context) ([]*entities.WalletTopUpTransaction, error)
		Balance(ctx context.Context, userID string) (int64, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// TransactionIDInUse reports whether an external payment reference was already
// claimed by any wallet top-up or points purchase request, system-wide.
func TransactionIDInUse(tx *gorm.DB, transactionID string) (bool, error) {
	var count int64
	if err := tx.Model(&entities.WalletTopUpTransaction{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := tx.Model(&entities.PointsPurchaseRequest{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// BalanceTx computes the wallet balance inside the supplied transaction:
// approved top-ups minus approved points purchases minus product orders.
func BalanceTx(tx *gorm.DB, userID string) (int64, error) {
	var topUps, purchases, orders int64

	if err := tx.Model(&entities.WalletTopUpTransaction{}).
		Where("user_id = ? AND status = ?", userID, domain.TransactionStatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&topUps); err != nil {
		return 0, err
	}

	if err := tx.Model(&entities.PointsPurchaseRequest{}).
		Where("user_id = ? AND status = ?", userID, domain.TransactionStatusApproved).
		Select("COALESCE(SUM(bdt_amount), 0)").
		Row().Scan(&purchases); err != nil {
		return 0, err
	}

	if err := tx.Model(&entities.ProductOrder{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&orders); err != nil {
		return 0, err
	}

	return topUps - purchases - orders, nil
}

func (r *walletRepository) CreateTopUp(ctx context.Context, topUp *entities.WalletTopUpTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := TransactionIDInUse(tx, topUp.TransactionID)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrDuplicateTransactionID
		}
		return tx.Create(topUp).Error
	})
}

func (r *walletRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entities.WalletTopUpTransaction, error) {
	var topUp entities.WalletTopUpTransaction
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&topUp).Error; err != nil {
		return nil, err
	}
	return &topUp, nil
}

// ResolveTopUp transitions pending -> status as one conditional update.
// Returns false when the transaction is not currently pending.
func (r *walletRepository) ResolveTopUp(ctx context.Context, adminID string, transactionID string, status string) (bool, error) {
	resolved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		res := tx.Model(&entities.WalletTopUpTransaction{}).
			Where("transaction_id = ? AND status = ?", transactionID, domain.TransactionStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		resolved = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return resolved, nil
}

func (r *walletRepository) SetProofURL(ctx context.Context, userID uuid.UUID, transactionID string, proofURL string) error {
	res := r.db.WithContext(ctx).Model(&entities.WalletTopUpTransaction{}).
		Where("transaction_id = ? AND user_id = ?", transactionID, userID).
		Update("proof_url", proofURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID string) ([]*entities.WalletTopUpTransaction, error) {
	var transactions []*entities.WalletTopUpTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *walletRepository) ListAll(ctx context.Context) ([]*entities.WalletTopUpTransaction, error) {
	var transactions []*entities.WalletTopUpTransaction
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *walletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	return BalanceTx(r.db.WithContext(ctx), userID)
}
