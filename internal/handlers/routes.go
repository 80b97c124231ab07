package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Catalog   *CatalogHandler
	Items     *ItemHandler
	Account   *AccountHandler
	Broadcast *BroadcastHandler
}

// RegisterRoutes registers the application routes with their rate limiter presets.
func RegisterRoutes(api huma.API, h Handlers) {
	huma.Register(api, huma.Operation{
		OperationID: "search-catalog",
		Method:      http.MethodGet,
		Path:        "/catalog",
		Summary:     "Search the catalog",
		Tags:        []string{"Catalog"},
		Metadata:    ratelimit.Metadata(ratelimit.Public),
	}, h.Catalog.Search)

	huma.Register(api, huma.Operation{
		OperationID: "wardrobe-analytics",
		Method:      http.MethodGet,
		Path:        "/analytics",
		Summary:     "Wardrobe analytics",
		Description: "Cost per wear, most and least worn items and color distribution for the signed-in user.",
		Tags:        []string{"Wardrobe"},
		Metadata:    ratelimit.Metadata(ratelimit.API),
	}, h.Items.Analytics)

	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/items",
		Summary:     "List wardrobe items",
		Tags:        []string{"Wardrobe"},
		Metadata:    ratelimit.Metadata(ratelimit.API),
	}, h.Items.List)

	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/items",
		Summary:       "Add a wardrobe item",
		Tags:          []string{"Wardrobe"},
		DefaultStatus: http.StatusCreated,
		Metadata:      ratelimit.Metadata(ratelimit.API),
	}, h.Items.Create)

	huma.Register(api, huma.Operation{
		OperationID: "log-wear",
		Method:      http.MethodPost,
		Path:        "/items/{id}/wear",
		Summary:     "Record that an item was worn",
		Tags:        []string{"Wardrobe"},
		Metadata:    ratelimit.Metadata(ratelimit.API),
	}, h.Items.LogWear)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-item",
		Method:        http.MethodDelete,
		Path:          "/items/{id}",
		Summary:       "Delete a wardrobe item",
		Tags:          []string{"Wardrobe"},
		DefaultStatus: http.StatusNoContent,
		Metadata:      ratelimit.Metadata(ratelimit.API),
	}, h.Items.Delete)

	// Image processing is slow and billed per call.
	huma.Register(api, huma.Operation{
		OperationID: "remove-background",
		Method:      http.MethodPost,
		Path:        "/items/{id}/remove-background",
		Summary:     "Remove the background of an item image",
		Tags:        []string{"Wardrobe"},
		Metadata:    ratelimit.Metadata(ratelimit.Heavy),
	}, h.Items.RemoveBackground)

	huma.Register(api, huma.Operation{
		OperationID:   "password-reset",
		Method:        http.MethodPost,
		Path:          "/auth/password-reset",
		Summary:       "Request a password reset email",
		Tags:          []string{"Account"},
		DefaultStatus: http.StatusAccepted,
		Metadata:      ratelimit.Metadata(ratelimit.Auth),
	}, h.Account.PasswordReset)

	huma.Register(api, huma.Operation{
		OperationID:   "broadcast",
		Method:        http.MethodPost,
		Path:          "/broadcast",
		Summary:       "Send a notification to every user",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusAccepted,
		Metadata:      ratelimit.Metadata(ratelimit.Heavy),
	}, h.Broadcast.Send)
}
