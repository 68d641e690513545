package product

import (
	"context"
	"fmt"
	"testing"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/wallet"

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
		&entities.PointsPurchaseRequest{},
		&entities.Product{},
		&entities.ProductOrder{},
	))
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

func fundWallet(t *testing.T, db *gorm.DB, userID string, amount int64) {
	t.Helper()
	require.NoError(t, db.Create(&entities.WalletTopUpTransaction{
		ID:            uuid.New(),
		UserID:        uuid.MustParse(userID),
		Amount:        amount,
		PaymentMethod: domain.PaymentMethodBkash,
		TransactionID: uuid.NewString(),
		Status:        domain.TransactionStatusApproved,
	}).Error)
}

func newTestService(db *gorm.DB) ProductService {
	return NewProductService(NewProductRepository(db))
}

func TestProductManagementRequiresAdmin(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	adminID := createUser(t, db, domain.RoleAdmin)

	_, err := svc.AddProduct(context.Background(), userID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	products, err := svc.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestUpdateProduct(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), adminID, created.ID, domain.UpdateProductRequest{
		Name:           "200 Diamonds",
		Price:          220,
		IsAutoDelivery: true,
	})
	require.NoError(t, err)
	require.True(t, updated)

	// unknown product id reports false instead of an error
	updated, err = svc.UpdateProduct(context.Background(), adminID, created.ID+100, domain.UpdateProductRequest{
		Name:  "Ghost",
		Price: 1,
	})
	require.NoError(t, err)
	require.False(t, updated)

	products, err := svc.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "200 Diamonds", products[0].Name)
	require.True(t, products[0].IsAutoDelivery)
}

func TestDeleteProduct(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), adminID, created.ID))

	products, err := svc.GetProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCreateOrderDebitsWallet(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, int64(120), order.Amount)

	balance, err := wallet.NewWalletRepository(db).Balance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(380), balance)
}

func TestCreateOrderAutoDeliveryStartsProcessing(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:           "Auto Pack",
		Price:          100,
		IsAutoDelivery: true,
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusProcessing, order.Status)
	require.True(t, order.IsAutoDelivery)
}

func TestCreateOrderInsufficientBalance(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 50)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	orders, err := svc.GetCallerOrders(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: 999}, userID)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)

	// pending cannot jump straight to delivered
	updated, err := svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusDelivered,
	})
	require.NoError(t, err)
	require.False(t, updated)

	updated, err = svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusProcessing,
	})
	require.NoError(t, err)
	require.True(t, updated)

	updated, err = svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusDelivered,
	})
	require.NoError(t, err)
	require.True(t, updated)

	// delivered is terminal
	updated, err = svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusFailed,
	})
	require.NoError(t, err)
	require.False(t, updated)

	// unknown order reports false
	updated, err = svc.UpdateOrderStatus(context.Background(), adminID, uuid.NewString(), domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusProcessing,
	})
	require.NoError(t, err)
	require.False(t, updated)
}

func TestCreateOrderSpendsToExactBalance(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 120)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)

	balance, err := wallet.NewWalletRepository(db).Balance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)

	// the drained wallet cannot fund another order
	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestUpdateOrderStatusFailedIsTerminal(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusFailed,
	})
	require.NoError(t, err)
	require.True(t, updated)

	// a late transition against the failed order must lose, not resurrect it
	updated, err = svc.UpdateOrderStatus(context.Background(), adminID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusProcessing,
	})
	require.NoError(t, err)
	require.False(t, updated)

	var stored entities.ProductOrder
	require.NoError(t, db.Where("id = ?", order.ID).First(&stored).Error)
	require.Equal(t, domain.OrderStatusFailed, stored.Status)
}

func TestUpdateOrderStatusRequiresAdmin(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)
	fundWallet(t, db, userID, 500)

	created, err := svc.AddProduct(context.Background(), adminID, domain.AddProductRequest{
		Name:  "100 Diamonds",
		Price: 120,
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: created.ID}, userID)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), userID, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusProcessing,
	})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)
}
