package points

import (
	"context"
	"fmt"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/settings"

	"github.com/google/uuid"
)

type (
	PointsService interface {
		GetBalance(ctx context.Context, userID string) (int64, error)
		GetCallerTransactions(ctx context.Context, userID string) ([]*domain.PointsTransaction, error)
		GetAllTransactions(ctx context.Context) ([]*domain.PointsTransaction, error)
		AdjustPoints(ctx context.Context, adminID string, req domain.AdjustPointsRequest) error

		SubmitPurchaseRequest(ctx context.Context, req domain.SubmitPointsPurchaseRequest, userID string) (*domain.PointsPurchaseRequest, error)
		ApprovePurchaseRequest(ctx context.Context, adminID string, requestID string) (bool, error)
		RejectPurchaseRequest(ctx context.Context, adminID string, requestID string) (bool, error)
		GetCallerPurchaseRequests(ctx context.Context, userID string) ([]*domain.PointsPurchaseRequest, error)
		GetAllPurchaseRequests(ctx context.Context) ([]*domain.PointsPurchaseRequest, error)

		PurchaseDiamonds(ctx context.Context, req domain.PurchaseDiamondsRequest, userID string) (*domain.DiamondPurchase, error)
		GetCallerDiamondPurchases(ctx context.Context, userID string) ([]*domain.DiamondPurchase, error)
		GetAllDiamondPurchases(ctx context.Context) ([]*domain.DiamondPurchase, error)

		ClaimAdReward(ctx context.Context, req domain.ClaimAdRewardRequest, userID string) error
		GetDailyAdCount(ctx context.Context, userID string) (int64, error)
	}

	pointsService struct {
		pointsRepository   PointsRepository
		settingsRepository settings.SettingsRepository
	}
)

func NewPointsService(pointsRepository PointsRepository, settingsRepository settings.SettingsRepository) PointsService {
	return &pointsService{
		pointsRepository:   pointsRepository,
		settingsRepository: settingsRepository,
	}
}

func newPurchaseTransaction(request *entities.PointsPurchaseRequest) *entities.PointsTransaction {
	return &entities.PointsTransaction{
		ID:              uuid.New(),
		UserID:          request.UserID,
		Amount:          request.Amount,
		TransactionType: domain.PointsTypePurchase,
		Metadata:        fmt.Sprintf("Purchased %d points for %d BDT (ref %s)", request.Amount, request.BdtAmount, request.TransactionID),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (s *pointsService) GetBalance(ctx context.Context, userID string) (int64, error) {
	return s.pointsRepository.Balance(ctx, userID)
}

func (s *pointsService) GetCallerTransactions(ctx context.Context, userID string) ([]*domain.PointsTransaction, error) {
	transactions, err := s.pointsRepository.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPointsTransactions(transactions), nil
}

func (s *pointsService) GetAllTransactions(ctx context.Context) ([]*domain.PointsTransaction, error) {
	transactions, err := s.pointsRepository.ListAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return toPointsTransactions(transactions), nil
}

func (s *pointsService) AdjustPoints(ctx context.Context, adminID string, req domain.AdjustPointsRequest) error {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	metadata := req.Note
	if metadata == "" {
		metadata = fmt.Sprintf("Admin adjustment of %d points", req.Amount)
	}

	transaction := &entities.PointsTransaction{
		ID:              uuid.New(),
		UserID:          userUUID,
		Amount:          req.Amount,
		TransactionType: domain.PointsTypeAdminAdjustment,
		Metadata:        metadata,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.pointsRepository.CreateAdjustment(ctx, adminID, transaction)
}

func (s *pointsService) SubmitPurchaseRequest(ctx context.Context, req domain.SubmitPointsPurchaseRequest, userID string) (*domain.PointsPurchaseRequest, error) {
	if req.BdtAmount <= 0 {
		return nil, domain.ErrInvalidBdtAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	conversion, err := s.settingsRepository.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Integer division floors, points are whole units.
	points := req.BdtAmount / conversion.BdtToPointsRate

	request := &entities.PointsPurchaseRequest{
		ID:            uuid.New(),
		UserID:        userUUID,
		BdtAmount:     req.BdtAmount,
		Amount:        points,
		TransactionID: req.TransactionID,
		Status:        domain.TransactionStatusPending,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.pointsRepository.CreatePurchaseRequest(ctx, request); err != nil {
		return nil, err
	}
	return toPointsPurchaseRequest(request), nil
}

func (s *pointsService) ApprovePurchaseRequest(ctx context.Context, adminID string, requestID string) (bool, error) {
	return s.pointsRepository.ResolvePurchaseRequest(ctx, adminID, requestID, true)
}

func (s *pointsService) RejectPurchaseRequest(ctx context.Context, adminID string, requestID string) (bool, error) {
	return s.pointsRepository.ResolvePurchaseRequest(ctx, adminID, requestID, false)
}

func (s *pointsService) GetCallerPurchaseRequests(ctx context.Context, userID string) ([]*domain.PointsPurchaseRequest, error) {
	requests, err := s.pointsRepository.ListRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPointsPurchaseRequests(requests), nil
}

func (s *pointsService) GetAllPurchaseRequests(ctx context.Context) ([]*domain.PointsPurchaseRequest, error) {
	requests, err := s.pointsRepository.ListAllRequests(ctx)
	if err != nil {
		return nil, err
	}
	return toPointsPurchaseRequests(requests), nil
}

func (s *pointsService) PurchaseDiamonds(ctx context.Context, req domain.PurchaseDiamondsRequest, userID string) (*domain.DiamondPurchase, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	conversion, err := s.settingsRepository.Get(ctx)
	if err != nil {
		return nil, err
	}

	pointsRequired := req.Quantity * conversion.PointsToDiamondsRate
	diamondsAwarded := req.Quantity * conversion.DiamondsPerPackage

	purchase := &entities.DiamondPurchase{
		ID:              uuid.New(),
		UserID:          userUUID,
		PackageName:     req.PackageName,
		Quantity:        req.Quantity,
		PointsDeducted:  pointsRequired,
		DiamondsAwarded: diamondsAwarded,
		TransactionID:   req.TransactionID,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	spend := &entities.PointsTransaction{
		ID:              uuid.New(),
		UserID:          userUUID,
		Amount:          -pointsRequired,
		TransactionType: domain.PointsTypeSpend,
		Metadata:        fmt.Sprintf("Spent %d points on %s x%d (ref %s)", pointsRequired, req.PackageName, req.Quantity, req.TransactionID),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.pointsRepository.CreateDiamondPurchase(ctx, purchase, spend); err != nil {
		return nil, err
	}
	return toDiamondPurchase(purchase), nil
}

func (s *pointsService) GetCallerDiamondPurchases(ctx context.Context, userID string) ([]*domain.DiamondPurchase, error) {
	purchases, err := s.pointsRepository.ListDiamondPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDiamondPurchases(purchases), nil
}

func (s *pointsService) GetAllDiamondPurchases(ctx context.Context) ([]*domain.DiamondPurchase, error) {
	purchases, err := s.pointsRepository.ListAllDiamondPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return toDiamondPurchases(purchases), nil
}

func (s *pointsService) ClaimAdReward(ctx context.Context, req domain.ClaimAdRewardRequest, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	reward := &entities.PointsTransaction{
		ID:              uuid.New(),
		UserID:          userUUID,
		Amount:          domain.AdRewardPoints,
		TransactionType: domain.PointsTypeAdReward,
		Metadata:        fmt.Sprintf("Ad reward (ref %s)", req.TransactionID),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.pointsRepository.ClaimAdReward(ctx, reward, startOfDayUTC(time.Now()))
}

func (s *pointsService) GetDailyAdCount(ctx context.Context, userID string) (int64, error) {
	return s.pointsRepository.CountAdRewardsSince(ctx, userID, startOfDayUTC(time.Now()))
}

// The counter is scoped by the UTC calendar day, it resets implicitly at
// the day boundary.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toPointsTransactions(transactions []*entities.PointsTransaction) []*domain.PointsTransaction {
	result := make([]*domain.PointsTransaction, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, &domain.PointsTransaction{
			ID:              t.ID.String(),
			UserID:          t.UserID.String(),
			Amount:          t.Amount,
			TransactionType: t.TransactionType,
			Metadata:        t.Metadata,
			CreatedAt:       t.CreatedAt,
		})
	}
	return result
}

func toPointsPurchaseRequest(r *entities.PointsPurchaseRequest) *domain.PointsPurchaseRequest {
	return &domain.PointsPurchaseRequest{
		ID:            r.ID.String(),
		UserID:        r.UserID.String(),
		BdtAmount:     r.BdtAmount,
		Amount:        r.Amount,
		TransactionID: r.TransactionID,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func toPointsPurchaseRequests(requests []*entities.PointsPurchaseRequest) []*domain.PointsPurchaseRequest {
	result := make([]*domain.PointsPurchaseRequest, 0, len(requests))
	for _, r := range requests {
		result = append(result, toPointsPurchaseRequest(r))
	}
	return result
}

func toDiamondPurchase(p *entities.DiamondPurchase) *domain.DiamondPurchase {
	return &domain.DiamondPurchase{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		PackageName:     p.PackageName,
		Quantity:        p.Quantity,
		PointsDeducted:  p.PointsDeducted,
		DiamondsAwarded: p.DiamondsAwarded,
		CreatedAt:       p.CreatedAt,
	}
}

func toDiamondPurchases(purchases []*entities.DiamondPurchase) []*domain.DiamondPurchase {
	result := make([]*domain.DiamondPurchase, 0, len(purchases))
	for _, p := range purchases {
		result = append(result, toDiamondPurchase(p))
	}
	return result
}
