package client

import (
	"context"
	"net/http"

	"github.com/celestiaorg/booking-acceptance/internal/api/routes"
	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

// AuthClient calls the authentication API
type AuthClient struct {
	base
}

// NewAuthClient creates an AuthClient for the environment in cfg
func NewAuthClient(cfg *config.Config) *AuthClient {
	return &AuthClient{base: newBase(cfg)}
}

// CreateToken sends POST /auth/login. credentials may be a TokenRequest or a
// RawPayload with missing or extra fields.
func (c *AuthClient) CreateToken(ctx context.Context, credentials types.TokenPayload) (*Exchange, error) {
	return c.do(ctx, http.MethodPost, routes.AuthLogin, credentials)
}

// AdminToken logs in with the admin credentials of cfg and returns the Cookie
// header value. ok is false when the login did not return a token; the
// exchange is returned either way.
func (c *AuthClient) AdminToken(ctx context.Context, cfg *config.Config) (header string, ex *Exchange, err error) {
	ex, err = c.CreateToken(ctx, types.TokenRequest{
		Username: cfg.AdminUsername(),
		Password: cfg.AdminPassword(),
	})
	if err != nil {
		return "", nil, err
	}
	if token, ok := TokenFrom(ex); ok {
		return CookieHeader(token), ex, nil
	}
	return "", ex, nil
}
