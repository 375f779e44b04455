package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/service"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/httpx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// ProductsHandler serves the catalog: public reads, admin writes.
type ProductsHandler struct {
	CatalogService *service.CatalogService
}

type productCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

type productUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
}

// HandleList handles GET /products
//
//	@Summary		List products
//	@Description	Catalog listing, newest first. Supports search (name/description,
//	@Description	case-insensitive) and inclusive minPrice/maxPrice bounds.
//	@Tags			Products
//	@Produce		json
//	@Param			search		query		string	false	"Substring match on name or description"
//	@Param			minPrice	query		number	false	"Inclusive lower price bound"
//	@Param			maxPrice	query		number	false	"Inclusive upper price bound"
//	@Success		200			{array}		domain.Product
//	@Failure		400			{object}	httpx.ErrorResponse	"Malformed price bound"
//	@Failure		500			{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	query := r.URL.Query()
	filter := domain.ProductFilter{Search: query.Get("search")}

	parsePrice := func(name string) (*float64, bool) {
		raw := query.Get(name)
		if raw == "" {
			return nil, true
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpx.WriteValidationError(w, map[string]string{name: "must be a number"})
			return nil, false
		}
		return &v, true
	}

	var ok bool
	if filter.MinPrice, ok = parsePrice("minPrice"); !ok {
		return
	}
	if filter.MaxPrice, ok = parsePrice("maxPrice"); !ok {
		return
	}

	products, err := h.CatalogService.ListProducts(ctx, filter)
	if err != nil {
		log.Error("failed to list products", "err", err)
		httpx.WriteInternalError(w)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	httpx.WriteJSON(w, http.StatusOK, products)
}

// HandleGet handles GET /products/{id}
//
//	@Summary	Fetch one product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product id"
//	@Success	200	{object}	domain.Product
//	@Failure	404	{object}	httpx.ErrorResponse	"Product not found"
//	@Failure	500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/products/{id} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	product, err := h.CatalogService.GetProduct(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Product not found")
			return
		}
		log.Error("failed to load product", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, product)
}

// HandleCreate handles POST /products
//
//	@Summary	Create a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		productCreateRequest	true	"Product fields"
//	@Success	201		{object}	domain.Product
//	@Failure	400		{object}	httpx.ErrorResponse	"Validation failure"
//	@Failure	403		{object}	httpx.ErrorResponse	"Admin role required"
//	@Failure	500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/products [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req productCreateRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.CatalogService.CreateProduct(ctx, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Error("failed to create product", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	log.Info("product created", "product_id", product.ID)
	httpx.WriteJSON(w, http.StatusCreated, product)
}

// HandleUpdate handles PATCH /products/{id}
//
//	@Summary	Update a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product id"
//	@Param		request	body		productUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	domain.Product
//	@Failure	400		{object}	httpx.ErrorResponse	"Validation failure"
//	@Failure	403		{object}	httpx.ErrorResponse	"Admin role required"
//	@Failure	404		{object}	httpx.ErrorResponse	"Product not found"
//	@Failure	500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/products/{id} [patch].
func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req productUpdateRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.CatalogService.UpdateProduct(ctx, r.PathValue("id"), service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Product not found")
			return
		}
		log.Error("failed to update product", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, product)
}

// HandleDelete handles DELETE /products/{id}
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Product id"
//	@Success	204	"Deleted"
//	@Failure	403	{object}	httpx.ErrorResponse	"Admin role required"
//	@Failure	404	{object}	httpx.ErrorResponse	"Product not found"
//	@Failure	500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/products/{id} [delete].
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CatalogService.DeleteProduct(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Product not found")
			return
		}
		log.Error("failed to delete product", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
