package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/dto"
	"github.com/fiterunited/fineract-template/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests for recurring deposit products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: ps,
	}
}

// RegisterProductRoutes registers the recurring deposit product routes.
func RegisterProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/recurringdepositproducts")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productId", h.getProduct)
		products.PUT("/:productId", h.updateProduct)
		products.DELETE("/:productId", h.deleteProduct)
	}
}

// bindCommand reads the raw JSON body so absent and null parameters stay distinguishable.
func bindCommand(c *gin.Context, logger *slog.Logger) (domain.ProductCommand, bool) {
	body, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return domain.ProductCommand{}, false
	}
	cmd, err := domain.ParseProductCommand(body)
	if err != nil {
		logger.Warn("Failed to parse product command", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return domain.ProductCommand{}, false
	}
	return cmd, true
}

// createProduct godoc
// @Summary Create a recurring deposit product
// @Description Validates the product, resolves its charges, tax group, charts and classifications, and writes its GL mappings
// @Tags recurringdepositproducts
// @Accept  json
// @Produce  json
// @Param   product body dto.ProductRequest true "Product definition"
// @Success 201 {object} dto.ProductIDResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Product rule violated"
// @Failure 404 {object} dto.ErrorResponse "Referenced charge, tax group, code value or GL account not found"
// @Failure 409 {object} dto.ErrorResponse "Name or short name already in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to create product"
// @Security BearerAuth
// @Router /recurringdepositproducts [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	cmd, ok := bindCommand(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", userID))
	logger.Info("Received request to create recurring deposit product", slog.String("product_name", cmd.String(domain.NameParam)))

	productID, err := h.productService.CreateProduct(c.Request.Context(), cmd, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Recurring deposit product created", slog.Int64("product_id", productID))
	c.JSON(http.StatusCreated, dto.ProductIDResponse{ResourceID: productID})
}

// listProducts godoc
// @Summary List recurring deposit products
// @Tags recurringdepositproducts
// @Produce  json
// @Success 200 {array} dto.ProductResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list products"
// @Security BearerAuth
// @Router /recurringdepositproducts [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list products")
		return
	}

	logger.Info("Recurring deposit products listed", slog.Int("count", len(products)))
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

// getProduct godoc
// @Summary Get a recurring deposit product
// @Tags recurringdepositproducts
// @Produce  json
// @Param   productId path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve product"
// @Security BearerAuth
// @Router /recurringdepositproducts/{productId} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, ok := parseIDParam(c, logger, "productId")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a recurring deposit product
// @Description Applies a partial update; only the parameters present in the body are considered. The response lists the fields that changed.
// @Tags recurringdepositproducts
// @Accept  json
// @Produce  json
// @Param   productId path int true "Product ID"
// @Param   product body dto.ProductRequest true "Parameters to change"
// @Success 200 {object} dto.ProductUpdateResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Product rule violated"
// @Failure 404 {object} dto.ErrorResponse "Product or referenced resource not found"
// @Failure 409 {object} dto.ErrorResponse "Name or short name already in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to update product"
// @Security BearerAuth
// @Router /recurringdepositproducts/{productId} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, ok := parseIDParam(c, logger, "productId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	cmd, ok := bindCommand(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("product_id", productID), slog.String("updater_user_id", userID))
	logger.Info("Received request to update recurring deposit product", slog.Any("parameters", cmd.Parameters()))

	id, changes, err := h.productService.UpdateProduct(c.Request.Context(), productID, cmd, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update product")
		return
	}

	logger.Info("Recurring deposit product updated", slog.Int("changed_fields", len(changes)))
	c.JSON(http.StatusOK, dto.ProductUpdateResponse{ResourceID: id, Changes: changes})
}

// deleteProduct godoc
// @Summary Delete a recurring deposit product
// @Description Removes the product together with its charge links, charts and GL mappings
// @Tags recurringdepositproducts
// @Produce  json
// @Param   productId path int true "Product ID"
// @Success 200 {object} dto.ProductIDResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete product"
// @Security BearerAuth
// @Router /recurringdepositproducts/{productId} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, ok := parseIDParam(c, logger, "productId")
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("product_id", productID))

	id, err := h.productService.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete product")
		return
	}

	logger.Info("Recurring deposit product deleted")
	c.JSON(http.StatusOK, dto.ProductIDResponse{ResourceID: id})
}
