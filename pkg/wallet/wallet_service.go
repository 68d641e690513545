package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/internal/utils/storage"
	"topup-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Mailer sends resolution notifications. Nil disables mailing.
	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	WalletService interface {
		SubmitTopUp(ctx context.Context, req domain.SubmitTopUpRequest, userID string) (*domain.WalletTransaction, error)
		UploadProof(ctx context.Context, req domain.UploadProofRequest, userID string) (string, error)
		ApproveTopUp(ctx context.Context, adminID string, transactionID string) (bool, error)
		RejectTopUp(ctx context.Context, adminID string, transactionID string) (bool, error)
		GetCallerTransactions(ctx context.Context, userID string) ([]*domain.WalletTransaction, error)
		GetAllTransactions(ctx context.Context) ([]*domain.WalletTransaction, error)
		GetBalance(ctx context.Context, userID string) (int64, error)
	}

	walletService struct {
		walletRepository WalletRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
		mailer           Mailer
	}
)

func NewWalletService(walletRepository WalletRepository, userRepository user.UserRepository, s3 storage.AwsS3, mailer Mailer) WalletService {
	return &walletService{
		walletRepository: walletRepository,
		userRepository:   userRepository,
		s3:               s3,
		mailer:           mailer,
	}
}

func (s *walletService) SubmitTopUp(ctx context.Context, req domain.SubmitTopUpRequest, userID string) (*domain.WalletTransaction, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.PaymentMethod != domain.PaymentMethodBkash && req.PaymentMethod != domain.PaymentMethodNagad {
		return nil, domain.ErrInvalidPaymentMethod
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	topUp := &entities.WalletTopUpTransaction{
		ID:            uuid.New(),
		UserID:        userUUID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        domain.TransactionStatusPending,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.walletRepository.CreateTopUp(ctx, topUp); err != nil {
		return nil, err
	}

	return toWalletTransaction(topUp), nil
}

func (s *walletService) UploadProof(ctx context.Context, req domain.UploadProofRequest, userID string) (string, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	topUp, err := s.walletRepository.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrTransactionNotFound
		}
		return "", err
	}
	if topUp.UserID != userUUID {
		return "", domain.ErrUserNotAllowed
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("proof-%s", topUp.ID.String()),
		req.Proof,
		"payment-proofs",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	proofURL := s.s3.GetPublicLinkKey(objectKey)
	if err := s.walletRepository.SetProofURL(ctx, userUUID, req.TransactionID, proofURL); err != nil {
		return "", err
	}
	return proofURL, nil
}

func (s *walletService) ApproveTopUp(ctx context.Context, adminID string, transactionID string) (bool, error) {
	resolved, err := s.walletRepository.ResolveTopUp(ctx, adminID, transactionID, domain.TransactionStatusApproved)
	if err != nil || !resolved {
		return resolved, err
	}

	s.notifyResolution(ctx, transactionID, "approved")
	return true, nil
}

func (s *walletService) RejectTopUp(ctx context.Context, adminID string, transactionID string) (bool, error) {
	resolved, err := s.walletRepository.ResolveTopUp(ctx, adminID, transactionID, domain.TransactionStatusRejected)
	if err != nil || !resolved {
		return resolved, err
	}

	s.notifyResolution(ctx, transactionID, "rejected")
	return true, nil
}

// notifyResolution is best-effort; a mail failure never fails the approval.
func (s *walletService) notifyResolution(ctx context.Context, transactionID string, outcome string) {
	if s.mailer == nil {
		return
	}

	topUp, err := s.walletRepository.GetByTransactionID(ctx, transactionID)
	if err != nil {
		log.Printf("notify resolution: %v", err)
		return
	}
	owner, err := s.userRepository.GetUserByID(ctx, topUp.UserID.String())
	if err != nil {
		log.Printf("notify resolution: %v", err)
		return
	}

	subject := fmt.Sprintf("Top-up %s", outcome)
	body := fmt.Sprintf(
		"<p>Your top-up of %d BDT (ref %s) has been %s.</p>",
		topUp.Amount, topUp.TransactionID, outcome,
	)
	if err := s.mailer.Send(owner.Email, subject, body); err != nil {
		log.Printf("notify resolution: %v", err)
	}
}

func (s *walletService) GetCallerTransactions(ctx context.Context, userID string) ([]*domain.WalletTransaction, error) {
	transactions, err := s.walletRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toWalletTransactions(transactions), nil
}

func (s *walletService) GetAllTransactions(ctx context.Context) ([]*domain.WalletTransaction, error) {
	transactions, err := s.walletRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toWalletTransactions(transactions), nil
}

func (s *walletService) GetBalance(ctx context.Context, userID string) (int64, error) {
	return s.walletRepository.Balance(ctx, userID)
}

func toWalletTransaction(t *entities.WalletTopUpTransaction) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:            t.ID.String(),
		UserID:        t.UserID.String(),
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		TransactionID: t.TransactionID,
		Status:        t.Status,
		ProofURL:      t.ProofURL,
		CreatedAt:     t.CreatedAt,
	}
}

func toWalletTransactions(transactions []*entities.WalletTopUpTransaction) []*domain.WalletTransaction {
	result := make([]*domain.WalletTransaction, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, toWalletTransaction(t))
	}
	return result
}
