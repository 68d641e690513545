package wallet

import (
	"context"
	"fmt"
	"testing"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/settings"
	"topup-backend/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.WalletTopUpTransaction{},
		&entities.PointsTransaction{},
		&entities.PointsPurchaseRequest{},
		&entities.DiamondPurchase{},
		&entities.ConversionSettings{},
		&entities.Product{},
		&entities.ProductOrder{},
	))
	require.NoError(t, settings.Seed(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) string {
	t.Helper()
	u := &entities.User{
		ID:    uuid.New(),
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:  "Test User",
		Role:  role,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID.String()
}

func newTestService(db *gorm.DB) WalletService {
	return NewWalletService(NewWalletRepository(db), user.NewUserRepository(db), nil, nil)
}

func TestSubmitTopUpCreatesPending(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)

	tx, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)
	require.Equal(t, domain.TransactionStatusPending, tx.Status)
	require.Equal(t, int64(500), tx.Amount)

	// pending top-ups do not count towards the balance
	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)
}

func TestSubmitTopUpValidation(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        0,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        100,
		PaymentMethod: "paypal",
		TransactionID: "TX1",
	}, userID)
	require.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

func TestSubmitTopUpDuplicateTransactionID(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	otherID := createUser(t, db, domain.RoleUser)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)

	// the same payment reference cannot be claimed twice, even by another user
	_, err = svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        300,
		PaymentMethod: domain.PaymentMethodNagad,
		TransactionID: "TX1",
	}, otherID)
	require.ErrorIs(t, err, domain.ErrDuplicateTransactionID)
	require.Contains(t, err.Error(), "already used")
}

func TestApproveTopUpCreditsBalance(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	adminID := createUser(t, db, domain.RoleAdmin)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)

	approved, err := svc.ApproveTopUp(context.Background(), adminID, "TX1")
	require.NoError(t, err)
	require.True(t, approved)

	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(500), balance)
}

func TestResolveTopUpIsIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	adminID := createUser(t, db, domain.RoleAdmin)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)

	approved, err := svc.ApproveTopUp(context.Background(), adminID, "TX1")
	require.NoError(t, err)
	require.True(t, approved)

	// already approved, a second resolution is a no-op
	approved, err = svc.ApproveTopUp(context.Background(), adminID, "TX1")
	require.NoError(t, err)
	require.False(t, approved)

	rejected, err := svc.RejectTopUp(context.Background(), adminID, "TX1")
	require.NoError(t, err)
	require.False(t, rejected)

	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(500), balance)
}

func TestRejectTopUpLeavesBalanceUntouched(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	adminID := createUser(t, db, domain.RoleAdmin)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)

	rejected, err := svc.RejectTopUp(context.Background(), adminID, "TX1")
	require.NoError(t, err)
	require.True(t, rejected)

	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)
}

func TestNonAdminCannotResolveTopUp(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)

	_, err := svc.SubmitTopUp(context.Background(), domain.SubmitTopUpRequest{
		Amount:        500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
	}, userID)
	require.NoError(t, err)

	_, err = svc.ApproveTopUp(context.Background(), userID, "TX1")
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestCallerTransactionsNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewWalletRepository(db)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	userUUID := uuid.MustParse(userID)

	base := time.Now().Add(-time.Hour)
	for i, txID := range []string{"TX1", "TX2", "TX3"} {
		require.NoError(t, repo.CreateTopUp(context.Background(), &entities.WalletTopUpTransaction{
			ID:            uuid.New(),
			UserID:        userUUID,
			Amount:        100,
			PaymentMethod: domain.PaymentMethodBkash,
			TransactionID: txID,
			Status:        domain.TransactionStatusPending,
			Timestamp: entities.Timestamp{
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
				UpdatedAt: base.Add(time.Duration(i) * time.Minute),
			},
		}))
	}

	transactions, err := svc.GetCallerTransactions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	require.Equal(t, "TX3", transactions[0].TransactionID)
	require.Equal(t, "TX1", transactions[2].TransactionID)
}

func TestBalanceIsDerivedFromLedger(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	userUUID := uuid.MustParse(userID)

	require.NoError(t, db.Create(&entities.WalletTopUpTransaction{
		ID:            uuid.New(),
		UserID:        userUUID,
		Amount:        1000,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1",
		Status:        domain.TransactionStatusApproved,
	}).Error)
	require.NoError(t, db.Create(&entities.PointsPurchaseRequest{
		ID:            uuid.New(),
		UserID:        userUUID,
		BdtAmount:     200,
		Amount:        4,
		TransactionID: "TX2",
		Status:        domain.TransactionStatusApproved,
	}).Error)
	require.NoError(t, db.Create(&entities.ProductOrder{
		ID:     uuid.New(),
		UserID: userUUID,
		Amount: 300,
		Status: domain.OrderStatusPending,
	}).Error)

	// 1000 credited, 200 spent on points, 300 spent on an order
	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(500), balance)
}
