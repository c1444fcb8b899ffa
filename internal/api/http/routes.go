package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires all handlers onto the router. The auth handler is
// optional: nil disables the dev login endpoint.
func RegisterRoutes(
	router *mux.Router,
	authMw *AuthMiddleware,
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	purchaseHandler *PurchaseHandler,
	dashboardHandler *DashboardHandler,
) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	if authHandler != nil {
		api.HandleFunc("/auth/login", authHandler.HandleLogin).Methods(http.MethodPost)
	}
	api.HandleFunc("/masterclasses", catalogHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/masterclasses/{id}", catalogHandler.HandleGet).Methods(http.MethodGet)

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(authMw.Handler)
	authed.HandleFunc("/orgs/{orgID}/purchases", purchaseHandler.HandlePurchase).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/purchases", purchaseHandler.HandleListPurchases).Methods(http.MethodGet)
	authed.HandleFunc("/me/progress", dashboardHandler.HandleMyProgress).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", dashboardHandler.HandleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", dashboardHandler.HandleMarkNotificationRead).Methods(http.MethodPost)
}
