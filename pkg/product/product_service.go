package product

import (
	"context"
	"errors"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		AddProduct(ctx context.Context, adminID string, req domain.AddProductRequest) (*domain.Product, error)
		GetProducts(ctx context.Context) ([]*domain.Product, error)
		UpdateProduct(ctx context.Context, adminID string, productID uint, req domain.UpdateProductRequest) (bool, error)
		DeleteProduct(ctx context.Context, adminID string, productID uint) error

		CreateOrder(ctx context.Context, req domain.CreateOrderRequest, userID string) (*domain.ProductOrder, error)
		GetCallerOrders(ctx context.Context, userID string) ([]*domain.ProductOrder, error)
		GetAllOrders(ctx context.Context) ([]*domain.ProductOrder, error)
		UpdateOrderStatus(ctx context.Context, adminID string, orderID string, req domain.UpdateOrderStatusRequest) (bool, error)
	}

	productService struct {
		productRepository ProductRepository
	}
)

func NewProductService(productRepository ProductRepository) ProductService {
	return &productService{productRepository: productRepository}
}

func (s *productService) AddProduct(ctx context.Context, adminID string, req domain.AddProductRequest) (*domain.Product, error) {
	product := &entities.Product{
		Name:           req.Name,
		Price:          req.Price,
		IsAutoDelivery: req.IsAutoDelivery,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.productRepository.CreateProduct(ctx, adminID, product); err != nil {
		return nil, err
	}
	return toProduct(product), nil
}

func (s *productService) GetProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepository.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		result = append(result, toProduct(p))
	}
	return result, nil
}

func (s *productService) UpdateProduct(ctx context.Context, adminID string, productID uint, req domain.UpdateProductRequest) (bool, error) {
	return s.productRepository.UpdateProduct(ctx, adminID, productID, req.Name, req.Price, req.IsAutoDelivery)
}

func (s *productService) DeleteProduct(ctx context.Context, adminID string, productID uint) error {
	return s.productRepository.DeleteProduct(ctx, adminID, productID)
}

func (s *productService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, userID string) (*domain.ProductOrder, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	product, err := s.productRepository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	status := domain.OrderStatusPending
	if product.IsAutoDelivery {
		status = domain.OrderStatusProcessing
	}

	order := &entities.ProductOrder{
		ID:             uuid.New(),
		UserID:         userUUID,
		ProductID:      product.ID,
		Amount:         product.Price,
		Status:         status,
		IsAutoDelivery: product.IsAutoDelivery,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.productRepository.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return toProductOrder(order), nil
}

func (s *productService) GetCallerOrders(ctx context.Context, userID string) ([]*domain.ProductOrder, error) {
	orders, err := s.productRepository.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProductOrders(orders), nil
}

func (s *productService) GetAllOrders(ctx context.Context) ([]*domain.ProductOrder, error) {
	orders, err := s.productRepository.ListAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return toProductOrders(orders), nil
}

func (s *productService) UpdateOrderStatus(ctx context.Context, adminID string, orderID string, req domain.UpdateOrderStatusRequest) (bool, error) {
	return s.productRepository.UpdateOrderStatus(ctx, adminID, orderID, req.Status)
}

func toProduct(p *entities.Product) *domain.Product {
	return &domain.Product{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		IsAutoDelivery: p.IsAutoDelivery,
	}
}

func toProductOrder(o *entities.ProductOrder) *domain.ProductOrder {
	return &domain.ProductOrder{
		ID:             o.ID.String(),
		UserID:         o.UserID.String(),
		ProductID:      o.ProductID,
		Amount:         o.Amount,
		Status:         o.Status,
		IsAutoDelivery: o.IsAutoDelivery,
		CreatedAt:      o.CreatedAt,
	}
}

func toProductOrders(orders []*entities.ProductOrder) []*domain.ProductOrder {
	result := make([]*domain.ProductOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, toProductOrder(o))
	}
	return result
}
