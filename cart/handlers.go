package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"fleur/catalog"
	"fleur/models"
	"fleur/notify"
	"fleur/promo"
	"fleur/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the cart HTTP surface. Both logged-in users and guests
// (X-Session-Key) share these routes.
type Handlers struct {
	store *Store
	hub   *notify.Hub
}

func NewHandlers(store *Store, hub *notify.Hub) *Handlers {
	return &Handlers{store: store, hub: hub}
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

func sessionKeyOrReject(w http.ResponseWriter, r *http.Request) string {
	key := utils.GetSessionKey(r)
	if key == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Login or a guest session key is required")
	}
	return key
}

// GetCart returns the derived cart view.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	view, err := h.store.Get(ctx, key)
	if err != nil {
		log.Println("GetCart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// AddItem puts a catalog product in the cart, merging quantities when the
// product is already there.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	var input struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	product, err := catalog.ByID(input.ProductID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.LineItem{
		Kind:        models.LineItemCatalog,
		ItemID:      strconv.Itoa(product.ProductID),
		ProductID:   product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		Emotion:     product.Emotion,
		UnitPrice:   product.Price,
	}

	view, err := h.store.AddItem(ctx, key, item, input.Quantity)
	if err != nil {
		log.Println("AddItem error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, fmt.Sprintf("Added %s to cart!", product.Name), notify.KindSuccess)
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

// UpdateQuantity sets an item's quantity; zero or less removes it.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	view, err := h.store.UpdateQuantity(ctx, key, ps.ByName("itemid"), input.Quantity)
	if err != nil {
		log.Println("UpdateQuantity error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// RemoveItem drops a line item; removing an absent id is not an error.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	view, err := h.store.RemoveItem(ctx, key, ps.ByName("itemid"))
	if err != nil {
		log.Println("RemoveItem error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, "Item removed from cart", notify.KindInfo)
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ClearCart empties items and promo.
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	view, err := h.store.Clear(ctx, key)
	if err != nil {
		log.Println("ClearCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, "Cart cleared", notify.KindInfo)
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ApplyPromo activates a promo code, replacing any previous one.
func (h *Handlers) ApplyPromo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please enter a promo code")
		return
	}

	view, applied, err := h.store.ApplyPromo(ctx, key, input.Code)
	if errors.Is(err, promo.ErrInvalidPromo) {
		h.hub.Notify(key, "Invalid promo code", notify.KindError)
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid promo code")
		return
	}
	if err != nil {
		log.Println("ApplyPromo error:", err)
		http.Error(w, "Failed to apply promo code", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, "Promo code applied! "+applied.Description, notify.KindSuccess)
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// RemovePromo clears the active promo code.
func (h *Handlers) RemovePromo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	view, err := h.store.RemovePromo(ctx, key)
	if err != nil {
		log.Println("RemovePromo error:", err)
		http.Error(w, "Failed to remove promo code", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, "Promo code removed", notify.KindInfo)
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// Checkout snapshots the cart into a confirmed order and clears it. Guest
// checkouts record no owner.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext(r)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	order, err := h.store.Checkout(ctx, key, utils.GetUserIDFromRequest(r))
	if errors.Is(err, ErrEmptyCart) {
		h.hub.Notify(key, "Your cart is empty", notify.KindError)
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Your cart is empty")
		return
	}
	if err != nil {
		log.Println("Checkout error:", err)
		http.Error(w, "Checkout failed", http.StatusInternalServerError)
		return
	}

	h.hub.Notify(key, fmt.Sprintf("Order confirmed! Total $%.2f", order.Total), notify.KindSuccess)
	utils.RespondWithJSON(w, http.StatusCreated, order)
}
