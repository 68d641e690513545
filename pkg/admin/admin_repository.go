package admin

import (
	"context"
	"topup-backend/domain"
	"topup-backend/entities"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		CountUsers(ctx context.Context) (int64, error)
		TotalPoints(ctx context.Context) (int64, error)
		TotalDiamonds(ctx context.Context) (int64, error)
		TotalRevenue(ctx context.Context) (int64, error)
		TotalAdRewardPoints(ctx context.Context) (int64, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *adminRepository) TotalPoints(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.PointsTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *adminRepository) TotalDiamonds(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.DiamondPurchase{}).
		Select("COALESCE(SUM(diamonds_awarded), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *adminRepository) TotalRevenue(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.WalletTopUpTransaction{}).
		Where("status = ?", domain.TransactionStatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *adminRepository) TotalAdRewardPoints(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.PointsTransaction{}).
		Where("transaction_type = ?", domain.PointsTypeAdReward).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
