package admin

import (
	"context"
	"topup-backend/domain"
)

// DefaultAdProfitBdtPerPoint is the fixed BDT earned per ad-reward point,
// used for analytics only. It is intentionally independent from the tunable
// bdt-to-points conversion rate.
const DefaultAdProfitBdtPerPoint = 3

type (
	AdminService interface {
		GetDashboard(ctx context.Context) (*domain.AdminDashboard, error)
		GetAdRewardsAnalytics(ctx context.Context) (*domain.AdRewardsAnalytics, error)
	}

	adminService struct {
		adminRepository     AdminRepository
		adProfitBdtPerPoint int64
	}
)

func NewAdminService(adminRepository AdminRepository, adProfitBdtPerPoint int64) AdminService {
	if adProfitBdtPerPoint <= 0 {
		adProfitBdtPerPoint = DefaultAdProfitBdtPerPoint
	}
	return &adminService{
		adminRepository:     adminRepository,
		adProfitBdtPerPoint: adProfitBdtPerPoint,
	}
}

func (s *adminService) GetDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	totalUsers, err := s.adminRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalPoints, err := s.adminRepository.TotalPoints(ctx)
	if err != nil {
		return nil, err
	}
	totalDiamonds, err := s.adminRepository.TotalDiamonds(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.adminRepository.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	adRewards, err := s.adminRepository.TotalAdRewardPoints(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AdminDashboard{
		TotalUsers:    totalUsers,
		TotalPoints:   totalPoints,
		TotalDiamonds: totalDiamonds,
		TotalRevenue:  totalRevenue,
		TotalAdProfit: adRewards * s.adProfitBdtPerPoint,
	}, nil
}

func (s *adminService) GetAdRewardsAnalytics(ctx context.Context) (*domain.AdRewardsAnalytics, error) {
	adRewards, err := s.adminRepository.TotalAdRewardPoints(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AdRewardsAnalytics{
		TotalAdRewards: adRewards,
		TotalProfit:    adRewards * s.adProfitBdtPerPoint,
	}, nil
}
