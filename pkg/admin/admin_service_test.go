package admin

import (
	"context"
	"fmt"
	"testing"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.WalletTopUpTransaction{},
		&entities.PointsTransaction{},
		&entities.DiamondPurchase{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	u := &entities.User{
		ID:    uuid.New(),
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:  "Test User",
		Role:  domain.RoleUser,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func TestGetDashboardAggregates(t *testing.T) {
	db := setupDB(t)
	svc := NewAdminService(NewAdminRepository(db), 0)

	alice := createUser(t, db)
	bob := createUser(t, db)

	// revenue only counts approved top-ups
	require.NoError(t, db.Create(&entities.WalletTopUpTransaction{
		ID: uuid.New(), UserID: alice, Amount: 500,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: "TX1", Status: domain.TransactionStatusApproved,
	}).Error)
	require.NoError(t, db.Create(&entities.WalletTopUpTransaction{
		ID: uuid.New(), UserID: bob, Amount: 900,
		PaymentMethod: domain.PaymentMethodNagad,
		TransactionID: "TX2", Status: domain.TransactionStatusPending,
	}).Error)

	require.NoError(t, db.Create(&entities.PointsTransaction{
		ID: uuid.New(), UserID: alice, Amount: 9,
		TransactionType: domain.PointsTypePurchase,
	}).Error)
	require.NoError(t, db.Create(&entities.PointsTransaction{
		ID: uuid.New(), UserID: alice, Amount: 2,
		TransactionType: domain.PointsTypeAdReward,
	}).Error)
	require.NoError(t, db.Create(&entities.PointsTransaction{
		ID: uuid.New(), UserID: bob, Amount: -4,
		TransactionType: domain.PointsTypeSpend,
	}).Error)

	require.NoError(t, db.Create(&entities.DiamondPurchase{
		ID: uuid.New(), UserID: bob, PackageName: "Weekly Pass",
		Quantity: 2, PointsDeducted: 200, DiamondsAwarded: 170,
	}).Error)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), dashboard.TotalUsers)
	require.Equal(t, int64(7), dashboard.TotalPoints)
	require.Equal(t, int64(170), dashboard.TotalDiamonds)
	require.Equal(t, int64(500), dashboard.TotalRevenue)
	require.Equal(t, int64(2*DefaultAdProfitBdtPerPoint), dashboard.TotalAdProfit)
}

func TestGetAdRewardsAnalytics(t *testing.T) {
	db := setupDB(t)
	svc := NewAdminService(NewAdminRepository(db), 5)

	alice := createUser(t, db)
	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&entities.PointsTransaction{
			ID: uuid.New(), UserID: alice, Amount: 1,
			TransactionType: domain.PointsTypeAdReward,
		}).Error)
	}
	// adjustments do not count as ad rewards
	require.NoError(t, db.Create(&entities.PointsTransaction{
		ID: uuid.New(), UserID: alice, Amount: 100,
		TransactionType: domain.PointsTypeAdminAdjustment,
	}).Error)

	analytics, err := svc.GetAdRewardsAnalytics(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), analytics.TotalAdRewards)
	require.Equal(t, int64(20), analytics.TotalProfit)
}

func TestGetDashboardEmpty(t *testing.T) {
	db := setupDB(t)
	svc := NewAdminService(NewAdminRepository(db), 0)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), dashboard.TotalUsers)
	require.Equal(t, int64(0), dashboard.TotalPoints)
	require.Equal(t, int64(0), dashboard.TotalDiamonds)
	require.Equal(t, int64(0), dashboard.TotalRevenue)
	require.Equal(t, int64(0), dashboard.TotalAdProfit)
}
