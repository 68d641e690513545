package product

import (
	"context"
	"errors"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/user"
	"topup-backend/pkg/wallet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProductRepository interface {
		CreateProduct(ctx context.Context, adminID string, product *entities.Product) error
		GetProducts(ctx context.Context) ([]*entities.Product, error)
		GetProductByID(ctx context.Context, id uint) (*entities.Product, error)
		UpdateProduct(ctx context.Context, adminID string, id uint, name string, price int64, isAutoDelivery bool) (bool, error)
		DeleteProduct(ctx context.Context, adminID string, id uint) error

		CreateOrder(ctx context.Context, order *entities.ProductOrder) error
		ListOrdersByUser(ctx context.Context, userID string) ([]*entities.ProductOrder, error)
		ListAllOrders(ctx context.Context) ([]*entities.ProductOrder, error)
		UpdateOrderStatus(ctx context.Context, adminID string, orderID string, status string) (bool, error)
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, adminID string, product *entities.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}
		return tx.Create(product).Error
	})
}

func (r *productRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uint) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, adminID string, id uint, name string, price int64, isAutoDelivery bool) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		res := tx.Model(&entities.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":             name,
				"price":            price,
				"is_auto_delivery": isAutoDelivery,
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, adminID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Product{}).Error
	})
}

// CreateOrder debits the wallet by inserting the order row, the balance
// check and the insert happen in one transaction, serialized per user.
func (r *productRepository) CreateOrder(ctx context.Context, order *entities.ProductOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.LockTx(tx, order.UserID.String()); err != nil {
			return err
		}

		balance, err := wallet.BalanceTx(tx, order.UserID.String())
		if err != nil {
			return err
		}
		if balance < order.Amount {
			return domain.ErrInsufficientBalance
		}
		return tx.Create(order).Error
	})
}

func (r *productRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*entities.ProductOrder, error) {
	var orders []*entities.ProductOrder
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *productRepository) ListAllOrders(ctx context.Context) ([]*entities.ProductOrder, error) {
	var orders []*entities.ProductOrder
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// pending -> processing -> delivered, any non-terminal state -> failed.
func validOrderTransition(from, to string) bool {
	switch from {
	case domain.OrderStatusPending:
		return to == domain.OrderStatusProcessing || to == domain.OrderStatusFailed
	case domain.OrderStatusProcessing:
		return to == domain.OrderStatusDelivered || to == domain.OrderStatusFailed
	default:
		return false
	}
}

// UpdateOrderStatus validates the transition against a locked read and claims
// it with a conditional update, so a concurrent transition cannot win against
// a stale status.
func (r *productRepository) UpdateOrderStatus(ctx context.Context, adminID string, orderID string, status string) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := user.EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		var order entities.ProductOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !validOrderTransition(order.Status, status) {
			return nil
		}

		res := tx.Model(&entities.ProductOrder{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}
