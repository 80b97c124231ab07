package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// IdentityProvider is the hosted auth service that owns credentials.
type IdentityProvider struct {
	client  *http.Client
	baseURL string
}

func NewIdentityProvider(client *http.Client, baseURL string) *IdentityProvider {
	return &IdentityProvider{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// RequestPasswordReset asks the provider to email a reset link.
func (p *IdentityProvider) RequestPasswordReset(ctx context.Context, email string) error {
	if p.baseURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/password-reset", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}
