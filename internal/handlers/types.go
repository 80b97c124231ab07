package handlers

import "github.com/serroba/wardrobe-go/internal/wardrobe"

// CatalogRequest is the query for browsing the shared catalog.
type CatalogRequest struct {
	Q      string `doc:"Free-text search on name, brand and color" example:"linen"  query:"q"`
	Filter string `doc:"Category filter"                            example:"tops"   query:"filter"`
	Limit  int    `doc:"Page size, defaults to 50 and is capped at 100" minimum:"0" query:"limit"`
	Offset int    `doc:"Number of products to skip"                  minimum:"0"    query:"offset"`
}

// CatalogResponse is one page of catalog results.
type CatalogResponse struct {
	Cache string `doc:"HIT when served from cache, MISS when computed" header:"X-Cache"`
	Body  *wardrobe.CatalogPage
}

// AnalyticsResponse is the caller's wardrobe summary.
type AnalyticsResponse struct {
	Cache string `doc:"HIT when served from cache, MISS when computed" header:"X-Cache"`
	Body  *wardrobe.Analytics
}

// ListItemsResponse lists the caller's wardrobe.
type ListItemsResponse struct {
	Body struct {
		Items []wardrobe.Item `json:"items"`
	}
}

// CreateItemRequest is the request body for adding an item.
type CreateItemRequest struct {
	Body struct {
		Name     string `doc:"Item name"              example:"Wool coat"                  json:"name"               maxLength:"200" minLength:"1"`
		Category string `doc:"Item category"          example:"outerwear"                  json:"category,omitempty"`
		Color    string `doc:"Dominant color"         example:"camel"                      json:"color,omitempty"`
		Brand    string `doc:"Brand"                  example:"Acme"                       json:"brand,omitempty"`
		Price    int64  `doc:"Purchase price in cents" example:"25000"                     json:"price"              minimum:"0"`
		ImageURL string `doc:"Image location"         example:"https://img.example/c.png" json:"imageUrl,omitempty"`
	}
}

// ItemRequest addresses a single item of the caller.
type ItemRequest struct {
	ID string `doc:"Item id" example:"V1StGXR8_Z5jdHi6B-myT" path:"id"`
}

// ItemResponse returns a single item.
type ItemResponse struct {
	Body *wardrobe.Item
}

// PasswordResetRequest starts a credential reset.
type PasswordResetRequest struct {
	Body struct {
		Email string `doc:"Account email" example:"someone@example.com" format:"email" json:"email"`
	}
}

// AcceptedResponse acknowledges a request whose outcome is not disclosed.
type AcceptedResponse struct {
	Body struct {
		Status string `example:"accepted" json:"status"`
	}
}

// BroadcastRequest is an admin announcement sent to every user.
type BroadcastRequest struct {
	Body struct {
		Title string `doc:"Notification title" json:"title" maxLength:"120" minLength:"1"`
		Body  string `doc:"Notification text"  json:"body"  maxLength:"2000" minLength:"1"`
	}
}

// BroadcastResponse identifies a queued broadcast.
type BroadcastResponse struct {
	Body struct {
		ID     string `json:"id"`
		Status string `example:"queued" json:"status"`
	}
}
