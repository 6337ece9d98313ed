package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopline/catalog-service/internal/api/dto"
	"github.com/shopline/catalog-service/internal/service"
	"github.com/shopline/catalog-service/internal/validation"
)

// ProductsHandler exposes the /products endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// List GET /products?title=.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext(), c.Query("title"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductViews(products))
}

// Get GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductView(product))
}

// Create POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	input, err := validation.Product(validation.Create, c.Body())
	if err != nil {
		return validationFailed(err)
	}
	product, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductView(product))
}

// Update PATCH /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	patch, err := validation.Product(validation.Update, c.Body())
	if err != nil {
		return validationFailed(err)
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductView(product))
}

// Delete DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
