package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/external"
	"go.uber.org/zap"
)

// PasswordResetter starts a reset with the identity provider.
type PasswordResetter interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

type AccountHandler struct {
	identity PasswordResetter
	logger   *zap.Logger
}

func NewAccountHandler(identity PasswordResetter, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{identity: identity, logger: logger}
}

// PasswordReset always answers 202 on success so callers cannot probe which
// emails have accounts.
func (h *AccountHandler) PasswordReset(ctx context.Context, req *PasswordResetRequest) (*AcceptedResponse, error) {
	err := h.identity.RequestPasswordReset(ctx, req.Body.Email)

	switch {
	case err == nil:
	case errors.Is(err, external.ErrNotConfigured):
		return nil, huma.Error503ServiceUnavailable("password reset is not available")
	default:
		h.logger.Error("password reset request failed", zap.Error(err))

		return nil, huma.Error502BadGateway("identity provider unavailable")
	}

	resp := &AcceptedResponse{}
	resp.Body.Status = "accepted"

	return resp, nil
}
