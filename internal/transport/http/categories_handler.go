package http

import (
	"encoding/json"
	"log"
	"net/http"

	"brainblitz-service/internal/app"
)

// CategoriesHandler serves the question provider's category catalog so start
// screens can offer a picker.
type CategoriesHandler struct {
	source app.CategorySource
}

func NewCategoriesHandler(source app.CategorySource) *CategoriesHandler {
	return &CategoriesHandler{source: source}
}

func (h *CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	categories, err := h.source.ListCategories(r.Context())
	if err != nil {
		log.Printf("category listing failed: %v", err)
		http.Error(w, "categories unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(categories)
}
