package middleware

import (
	"context"
	"strings"

	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/jwt"
	"github.com/snektrials/backend/pkg/router"
	"github.com/snektrials/backend/pkg/xcontext"
)

type AuthVerifier struct {
	tokenEngine *jwt.Engine[model.AccessToken]
}

func NewAuthVerifier(tokenEngine *jwt.Engine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{tokenEngine: tokenEngine}
}

// Middleware resolves the bearer token into the requesting player. An
// absent or invalid token leaves the request unauthenticated; handlers
// that need an identity pair this with Authenticate.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return nil, nil
		}

		authorization := req.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok {
			return nil, nil
		}

		accessToken, err := a.tokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}
