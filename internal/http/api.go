package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop-backend/internal/domain"
	"shop-backend/internal/events"
	"shop-backend/internal/service"
	"shop-backend/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth     service.AuthService
	catalog  service.CatalogService
	images   storage.Service
	producer events.Producer
	logger   *logrus.Logger
}

func NewHandler(auth service.AuthService, catalog service.CatalogService, images storage.Service, producer events.Producer, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:     auth,
		catalog:  catalog,
		images:   images,
		producer: producer,
		logger:   logger,
	}
}

// RegisterRoutes attaches middleware and the API surface. imageDir, when
// non-empty, is served statically under /images (local storage backend).
func (h *Handler) RegisterRoutes(router *gin.Engine, corsOrigin, imageDir string) {
	router.Use(requestID(), corsMiddleware(corsOrigin))

	if imageDir != "" {
		router.Static("/images", imageDir)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/products", h.listProducts)

		admin := api.Group("", h.authRequired(), h.requireRole(domain.RoleAdmin))
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Fabric      string  `json:"fabric"`
	Color       string  `json:"color"`
	Image       string  `json:"image"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.publish(c, strconv.FormatInt(user.ID, 10), map[string]any{
		"type":  "user_registered",
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "user registered"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidCredentials.Error()})
			return
		}
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = h.productToResponse(products[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	imageName := storage.NewImageName(fileHeader.Filename)
	if err := h.images.SaveImage(c.Request.Context(), imageName, contentType, file); err != nil {
		h.logger.Errorf("save image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Fabric:      c.PostForm("fabric"),
		Color:       c.PostForm("color"),
		Image:       imageName,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.publish(c, strconv.FormatInt(product.ID, 10), map[string]any{
		"type": "product_created",
		"id":   product.ID,
		"name": product.Name,
	})

	c.JSON(http.StatusCreated, h.productToResponse(*product))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Fabric:      req.Fabric,
		Color:       req.Color,
		Image:       req.Image,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.publish(c, strconv.FormatInt(product.ID, 10), map[string]any{
		"type": "product_updated",
		"id":   product.ID,
		"name": product.Name,
	})

	c.JSON(http.StatusOK, h.productToResponse(*product))
}

// serviceError maps service failures onto HTTP statuses: invalid input 400,
// missing product 404, everything else 500.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("request %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) publish(c *gin.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.producer.Publish(ctx, key, event); err != nil {
		h.logger.Warnf("publish event %s: %v", event["type"], err)
	}
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Fabric      string  `json:"fabric,omitempty"`
	Color       string  `json:"color,omitempty"`
	Image       string  `json:"image"`
	ImageURL    string  `json:"image_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (h *Handler) productToResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Fabric:      p.Fabric,
		Color:       p.Color,
		Image:       p.Image,
		ImageURL:    h.images.ImageURL(p.Image),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
