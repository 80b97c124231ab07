package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotConfigured = errors.New("external service is not configured")

// BackgroundRemover calls an image service that returns a copy of the image
// with its background removed.
type BackgroundRemover struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewBackgroundRemover(client *http.Client, endpoint, apiKey string) *BackgroundRemover {
	return &BackgroundRemover{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
	}
}

type removeRequest struct {
	ImageURL string `json:"imageUrl"`
}

type removeResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Remove returns the URL of the processed image.
func (b *BackgroundRemover) Remove(ctx context.Context, imageURL string) (string, error) {
	if b.endpoint == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(removeRequest{ImageURL: imageURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/v1/remove-background", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out removeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}

	if out.ImageURL == "" {
		return "", fmt.Errorf("%w: empty image url", ErrUpstream)
	}

	return out.ImageURL, nil
}
