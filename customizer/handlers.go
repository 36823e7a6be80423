package customizer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fleur/cart"
	"fleur/models"
	"fleur/notify"
	"fleur/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the bar-builder HTTP surface.
type Handlers struct {
	store     *Store
	cartStore *cart.Store
	hub       *notify.Hub
}

func NewHandlers(store *Store, cartStore *cart.Store, hub *notify.Hub) *Handlers {
	return &Handlers{store: store, cartStore: cartStore, hub: hub}
}

func sessionKeyOrReject(w http.ResponseWriter, r *http.Request) string {
	key := utils.GetSessionKey(r)
	if key == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Login or a guest session key is required")
	}
	return key
}

// GetSession returns the builder state for this session key.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.store.Session(key).View())
}

// SelectOption records one slot choice. Unknown keys are reported but do
// not change price or step, mirroring the builder's silent no-op.
func (h *Handlers) SelectOption(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	var input struct {
		Slot   models.Slot `json:"slot"`
		Option string      `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	session := h.store.Session(key)
	applied := session.SelectOption(input.Slot, input.Option)

	view := session.View()
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"session": view,
	})
}

// ResetSession clears all selections back to the first step.
func (h *Handlers) ResetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	session := h.store.Session(key)
	session.Reset()
	utils.RespondWithJSON(w, http.StatusOK, session.View())
}

// AddToCart materializes the completed build into a custom bar, adds it
// to the cart, and resets the builder for the next creation.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := sessionKeyOrReject(w, r)
	if key == "" {
		return
	}

	session := h.store.Session(key)
	item, err := session.Materialize(time.Now())
	if errors.Is(err, ErrIncompleteSelection) {
		h.hub.Notify(key, "Please complete all customization steps", notify.KindError)
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Please complete all customization steps")
		return
	}
	if err != nil {
		log.Println("AddToCart materialize error:", err)
		http.Error(w, "Failed to build custom bar", http.StatusInternalServerError)
		return
	}

	view, err := h.cartStore.AddItem(ctx, key, item, item.Quantity)
	if err != nil {
		log.Println("AddToCart cart error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	session.Reset()

	h.hub.Notify(key, "Custom bar added to cart!", notify.KindSuccess)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"item": item,
		"cart": view,
	})
}
