package transport

import (
	"bytes"
	"encoding/json"
	"net/http"

	"techmarket/internal/domain"
	"techmarket/internal/middleware"
	"techmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FormValue accepts a JSON string or number and keeps its text form, so
// prices go through the same parsing as typed form input.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// ProductRequest is the management form. Which fields are required depends
// on the action and is checked by the service.
type ProductRequest struct {
	Title       string    `json:"title" validate:"max=255"`
	Price       FormValue `json:"price" validate:"max=32"`
	Description string    `json:"description"`
	Image       string    `json:"image" validate:"max=1000"`
}

func (req ProductRequest) form(id string) domain.ProductForm {
	return domain.ProductForm{
		ID:          id,
		Title:       req.Title,
		Price:       string(req.Price),
		Description: req.Description,
		Image:       req.Image,
	}
}

// ProductListResponse is the rendered product list
type ProductListResponse struct {
	Products []domain.ProductCard `json:"products"`
}

// MutationResponse reports a successful management action
type MutationResponse struct {
	Message  string            `json:"message"`
	Products []*domain.Product `json:"products"`
}

// ProductHandler serves the product list and the management actions
type ProductHandler struct {
	productService service.ProductService
	cardWidth      int
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler. Card descriptions are
// wrapped at cardWidth runes.
func NewProductHandler(productService service.ProductService, cardWidth int, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		cardWidth:      cardWidth,
		logger:         logger,
	}
}

// RegisterRoutes registers the public list and the admin-only management routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminOnly ...func(http.Handler) http.Handler) {
	r.Get("/api/products", h.List)

	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(adminOnly...)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns every product as a card, ordered by id
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		middleware.RespondWithError(w, statusFor(err), service.MsgListFailed)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: domain.NewProductCards(products, h.cardWidth),
	})
}

// Create inserts a product from a complete form
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.Create(r.Context(), req.form(""))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("admin", adminName(r)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, MutationResponse{
		Message:  service.MsgProductCreated,
		Products: []*domain.Product{product},
	})
}

// Update applies the filled fields to the product in the path
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	products, err := h.productService.Update(r.Context(), req.form(chi.URLParam(r, "id")))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	h.logger.Info("Product updated",
		zap.String("product_id", chi.URLParam(r, "id")),
		zap.String("admin", adminName(r)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, MutationResponse{
		Message:  service.MsgProductUpdated,
		Products: products,
	})
}

// Delete removes the product in the path
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.Delete(r.Context(), domain.ProductForm{ID: chi.URLParam(r, "id")})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	h.logger.Info("Product deleted",
		zap.String("product_id", chi.URLParam(r, "id")),
		zap.String("admin", adminName(r)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, MutationResponse{
		Message:  service.MsgProductDeleted,
		Products: products,
	})
}

func adminName(r *http.Request) string {
	name, _ := middleware.GetAdminName(r.Context())
	return name
}
