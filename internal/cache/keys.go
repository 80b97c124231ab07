package cache

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/serroba/wardrobe-go/internal/wardrobe"
)

// CatalogKey builds catalog:<q>:<filter>:<limit>:<offset> from the normalized
// query. Free-text parts are escaped so that ':' in user input cannot collide.
func CatalogKey(q wardrobe.CatalogQuery) string {
	q = q.Normalize()

	return strings.Join([]string{
		"catalog",
		url.QueryEscape(q.Query),
		url.QueryEscape(q.Filter),
		strconv.Itoa(q.Limit),
		strconv.Itoa(q.Offset),
	}, ":")
}

// AnalyticsKey is the per-user analytics entry.
func AnalyticsKey(userID string) string {
	return "analytics:" + url.QueryEscape(userID)
}
