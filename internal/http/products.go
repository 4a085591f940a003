package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-api/internal/domain"
)

type createProductRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	SKU         string   `json:"sku"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Quantity    *int64   `json:"quantity"`
	Price       *float64 `json:"price"`
}

type updateQuantityRequest struct {
	Quantity any `json:"quantity"`
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	id, err := h.products.Create(c.Request.Context(), domain.NewProduct{
		Name:        req.Name,
		Type:        req.Type,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	entry := logEntry(c, h.logger).WithField("product_id", id)
	if identity, ok := IdentityFromContext(c.Request.Context()); ok {
		entry = entry.WithField("created_by", identity.ID)
	}
	entry.Info("product created")

	c.JSON(http.StatusCreated, gin.H{"product_id": id, "msg": "Product added successfully"})
}

// listProducts treats absent or non-numeric page/limit as unset.
func (h *Handler) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, err := h.products.List(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(products[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid product id"})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Quantity must be a number"})
		return
	}
	quantity, err := domain.ParseQuantity(req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	product, err := h.products.UpdateQuantity(c.Request.Context(), id, quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, productToResponse(*product))
}

func productToResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		SKU:         p.SKU,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
