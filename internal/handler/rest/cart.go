package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/httputil"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/validator"
)

// CartHandler handles HTTP requests for the cart endpoints. All routes run
// behind the strict auth gate, so the owner is always the signed-in user.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// AddToCartRequest is the JSON request body for adding an item. Field names
// match what the storefront frontend sends.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateQtyRequest is the JSON request body for setting a line quantity.
type UpdateQtyRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// RemoveItemRequest is the JSON request body for removing a line.
type RemoveItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddToCart handles POST /api/cart/add-to-cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), owner, service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Message: "Item added to cart",
		Data:    cart,
	})
}

// GetCart handles GET /api/cart/get-cart. Line items are resolved against the
// current catalog before they go out.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCartResolved(r.Context(), owner)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateQty handles POST /api/cart/update-qty
func (h *CartHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), owner, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Message: "Quantity updated",
		Data:    cart,
	})
}

// RemoveItem handles POST /api/cart/remove-item
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), owner, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Message: "Item removed",
		Data:    cart,
	})
}

// ClearCart handles POST /api/cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(r.Context(), owner); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Message: "Cart cleared successfully",
	})
}

// ownerFromRequest derives the cart owner from the verified identity. The
// strict gate upstream guarantees one is present; this guards against
// misconfigured routing.
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (domain.CartOwner, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "you must be logged in"},
		})
		return domain.CartOwner{}, false
	}
	return domain.OwnerForUser(identity.UserID), true
}
