package settings

import (
	"context"
	"topup-backend/domain"
)

type (
	SettingsService interface {
		GetSettings(ctx context.Context) (*domain.ConversionSettings, error)
		UpdateSettings(ctx context.Context, adminID string, req domain.UpdateConversionSettingsRequest) error
	}

	settingsService struct {
		settingsRepository SettingsRepository
	}
)

func NewSettingsService(settingsRepository SettingsRepository) SettingsService {
	return &settingsService{settingsRepository: settingsRepository}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.ConversionSettings, error) {
	settings, err := s.settingsRepository.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ConversionSettings{
		BdtToPointsRate:      settings.BdtToPointsRate,
		PointsToDiamondsRate: settings.PointsToDiamondsRate,
		DiamondsPerPackage:   settings.DiamondsPerPackage,
	}, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, adminID string, req domain.UpdateConversionSettingsRequest) error {
	return s.settingsRepository.Update(
		ctx,
		adminID,
		req.BdtToPointsRate,
		req.PointsToDiamondsRate,
		req.DiamondsPerPackage,
	)
}
