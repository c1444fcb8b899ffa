package http

import (
	"net/http"

	"elira-backend/internal/domain"
	"elira-backend/internal/service"

	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	classes, err := h.catalogSvc.ListMasterclasses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if classes == nil {
		classes = []domain.Masterclass{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "masterclasses": classes})
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	masterclass, err := h.catalogSvc.GetMasterclass(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "masterclass": masterclass})
}
