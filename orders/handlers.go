package orders

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"fleur/models"
	"fleur/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the order-history HTTP surface.
type Handlers struct {
	recorder *Recorder
}

func NewHandlers(recorder *Recorder) *Handlers {
	return &Handlers{recorder: recorder}
}

// ListOrders returns the caller's order history, newest first.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.recorder.ListFor(ctx, userID)
	if err != nil {
		log.Println("ListOrders error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// readableBy reports whether a session key may read an order: the
// recorded owner, or the session that placed it. An empty key never
// matches, so anonymous callers cannot reach guest orders.
func readableBy(order models.Order, key string) bool {
	if key == "" {
		return false
	}
	if order.OwnerID != "" && order.OwnerID == key {
		return true
	}
	return order.SessionKey != "" && order.SessionKey == key
}

// GetOrder returns one order. Only the owner may read it; guest orders
// are readable by the guest session that placed them.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := h.recorder.FindByID(ctx, ps.ByName("orderid"))
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetOrder error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return
	}

	if !readableBy(order, utils.GetSessionKey(r)) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}
