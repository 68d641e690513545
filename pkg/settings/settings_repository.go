package settings

import (
	"context"
	"errors"
	"time"
	"topup-backend/entities"
	"topup-backend/pkg/user"

	"gorm.io/gorm"
)

const (
	DefaultBdtToPointsRate      = 50
	DefaultPointsToDiamondsRate = 100
	DefaultDiamondsPerPackage   = 85
)

type (
	SettingsRepository interface {
		Get(ctx context.Context) (*entities.ConversionSettings, error)
		Update(ctx context.Context, adminID string, bdtToPointsRate, pointsToDiamondsRate, diamondsPerPackage int64) error
	}

	settingsRepository struct {
		db *gorm.DB
	}
)

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Seed inserts the default singleton when none exists yet.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.ConversionSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&entities.ConversionSettings{
		BdtToPointsRate:      DefaultBdtToPointsRate,
		PointsToDiamondsRate: DefaultPointsToDiamondsRate,
		DiamondsPerPackage:   DefaultDiamondsPerPackage,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}).Error
}

func (r *settingsRepository) Get(ctx context.Context) (*entities.ConversionSettings, error) {
	var settings entities.ConversionSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The singleton must never be absent, recover by reseeding.
	if err := Seed(r.db.WithContext(ctx)); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, adminID string, bdtToPointsRate, pointsToDiamondsRate, diamondsPerPackage int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		var settings entities.ConversionSettings
		if err := tx.First(&settings).Error; err != nil {
			return err
		}

		settings.BdtToPointsRate = bdtToPointsRate
		settings.PointsToDiamondsRate = pointsToDiamondsRate
		settings.DiamondsPerPackage = diamondsPerPackage
		settings.UpdatedAt = time.Now()
		return tx.Save(&settings).Error
	})
}
