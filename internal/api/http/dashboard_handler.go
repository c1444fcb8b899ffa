package http

import (
	"net/http"
	"strconv"

	"elira-backend/internal/domain"
	"elira-backend/internal/service"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DashboardHandler serves the student dashboard reads: learning progress
// and in-app notifications.
type DashboardHandler struct {
	progressSvc     service.ProgressService
	notificationSvc service.NotificationService
}

func NewDashboardHandler(progressSvc service.ProgressService, notificationSvc service.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		progressSvc:     progressSvc,
		notificationSvc: notificationSvc,
	}
}

func (h *DashboardHandler) HandleMyProgress(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentityFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.progressSvc.ListMyProgress(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.Progress{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "progress": records})
}

func (h *DashboardHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentityFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page := parseQueryInt(r, "page", 1)
	pageSize := parseQueryInt(r, "page_size", 20)

	notes, total, err := h.notificationSvc.GetNotifications(r.Context(), identity.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notifications": notes, "total": total})
}

func (h *DashboardHandler) HandleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentityFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, status.Error(codes.InvalidArgument, "invalid notification id"))
		return
	}

	if err := h.notificationSvc.MarkAsRead(r.Context(), identity.UserID, int32(id)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func parseQueryInt(r *http.Request, key string, fallback int32) int32 {
	val := r.URL.Query().Get(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseInt(val, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
