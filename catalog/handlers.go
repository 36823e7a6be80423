package catalog

import (
	"net/http"
	"strconv"

	"fleur/models"
	"fleur/utils"

	"github.com/julienschmidt/httprouter"
)

// GetProducts returns the catalog, optionally narrowed by ?category=,
// ?emotion= and free-text ?q=.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	category := r.URL.Query().Get("category")
	emotion := r.URL.Query().Get("emotion")
	query := r.URL.Query().Get("q")

	results := Filter(category, emotion)
	if query != "" {
		matched := Search(query)
		results = intersect(results, matched)
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetProduct returns a single product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("productid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := ByID(id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCustomizationOptions returns the three slot tables for the builder.
func GetCustomizationOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"slotOrder": models.SlotOrder,
		"options":   AllOptions(),
	})
}

func intersect(a, b []models.Product) []models.Product {
	ids := make(map[int]bool, len(b))
	for _, p := range b {
		ids[p.ProductID] = true
	}
	out := []models.Product{}
	for _, p := range a {
		if ids[p.ProductID] {
			out = append(out, p)
		}
	}
	return out
}
