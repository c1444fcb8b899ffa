package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"elira-backend/internal/domain"
	"elira-backend/internal/service"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type PurchaseHandler struct {
	purchaseSvc service.PurchaseService
}

func NewPurchaseHandler(purchaseSvc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

type purchaseRequest struct {
	MasterclassID   string `json:"masterclass_id"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

type purchaseResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	EnrolledCount int32  `json:"enrolled_count"`
}

func (h *PurchaseHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentityFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}

	orgID := mux.Vars(r)["orgID"]
	enrolledCount, err := h.purchaseSvc.PurchaseMasterclass(r.Context(), identity.UserID, orgID, req.MasterclassID, req.PaymentIntentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{
		Success:       true,
		Message:       fmt.Sprintf("Masterclass purchased, %d employees enrolled", enrolledCount),
		EnrolledCount: enrolledCount,
	})
}

type listPurchasesResponse struct {
	Success   bool              `json:"success"`
	Purchases []domain.Purchase `json:"purchases"`
}

func (h *PurchaseHandler) HandleListPurchases(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentityFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	orgID := mux.Vars(r)["orgID"]
	purchases, err := h.purchaseSvc.ListPurchases(r.Context(), identity.UserID, orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	if purchases == nil {
		purchases = []domain.Purchase{}
	}
	writeJSON(w, http.StatusOK, listPurchasesResponse{Success: true, Purchases: purchases})
}
