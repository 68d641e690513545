package domain

import (
	"errors"
	"time"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusFailed     = "failed"
)

var (
	MessageSuccessGetProducts       = "products retrieved successfully"
	MessageSuccessAddProduct        = "product added successfully"
	MessageSuccessUpdateProduct     = "product updated successfully"
	MessageSuccessDeleteProduct     = "product deleted successfully"
	MessageSuccessCreateOrder       = "order created successfully"
	MessageSuccessGetOrders         = "orders retrieved successfully"
	MessageSuccessUpdateOrderStatus = "order status updated"

	MessageFailedGetProducts       = "failed to retrieve products"
	MessageFailedAddProduct        = "failed to add product"
	MessageFailedUpdateProduct     = "failed to update product"
	MessageFailedDeleteProduct     = "failed to delete product"
	MessageFailedCreateOrder       = "failed to create order"
	MessageFailedGetOrders         = "failed to retrieve orders"
	MessageFailedUpdateOrderStatus = "failed to update order status"

	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type (
	AddProductRequest struct {
		Name           string `json:"name" validate:"required"`
		Price          int64  `json:"price" validate:"required,min=1"`
		IsAutoDelivery bool   `json:"is_auto_delivery"`
	}

	UpdateProductRequest struct {
		Name           string `json:"name" validate:"required"`
		Price          int64  `json:"price" validate:"required,min=1"`
		IsAutoDelivery bool   `json:"is_auto_delivery"`
	}

	Product struct {
		ID             uint   `json:"id"`
		Name           string `json:"name"`
		Price          int64  `json:"price"`
		IsAutoDelivery bool   `json:"is_auto_delivery"`
	}

	CreateOrderRequest struct {
		ProductID uint `json:"product_id" validate:"required"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending processing delivered failed"`
	}

	ProductOrder struct {
		ID             string    `json:"id"`
		UserID         string    `json:"user_id"`
		ProductID      uint      `json:"product_id"`
		Amount         int64     `json:"amount"`
		Status         string    `json:"status"`
		IsAutoDelivery bool      `json:"is_auto_delivery"`
		CreatedAt      time.Time `json:"created_at"`
	}
)
