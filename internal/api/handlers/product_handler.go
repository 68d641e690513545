package handlers

import (
	"strconv"
	"topup-backend/domain"
	"topup-backend/internal/api/presenters"
	"topup-backend/pkg/product"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		GetProducts(c *fiber.Ctx) error
		AddProduct(c *fiber.Ctx) error
		UpdateProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error

		CreateOrder(c *fiber.Ctx) error
		GetCallerOrders(c *fiber.Ctx) error
		GetAllOrders(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		validator:      validator,
	}
}

func (h *productHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetProducts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}
	return presenters.SuccessResponse(c, products, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) AddProduct(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.AddProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	created, err := h.productService.AddProduct(c.Context(), adminID, *req)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedAddProduct, err)
	}
	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessAddProduct)
}

func (h *productHandler) UpdateProduct(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	req := new(domain.UpdateProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	updated, err := h.productService.UpdateProduct(c.Context(), adminID, uint(productID), *req)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedUpdateProduct, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"updated": updated}, fiber.StatusOK, domain.MessageSuccessUpdateProduct)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}

	if err := h.productService.DeleteProduct(c.Context(), adminID, uint(productID)); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedDeleteProduct, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

func (h *productHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	order, err := h.productService.CreateOrder(c.Context(), *req, userID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrProductNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedCreateOrder, err)
	}
	return presenters.SuccessResponse(c, order, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *productHandler) GetCallerOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	orders, err := h.productService.GetCallerOrders(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *productHandler) GetAllOrders(c *fiber.Ctx) error {
	orders, err := h.productService.GetAllOrders(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *productHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	orderID := c.Params("id")

	req := new(domain.UpdateOrderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderStatus, err)
	}

	updated, err := h.productService.UpdateOrderStatus(c.Context(), adminID, orderID, *req)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrUserNotAllowed {
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedUpdateOrderStatus, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"updated": updated}, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}
