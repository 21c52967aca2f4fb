package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/surveyhub/surveyhub/internal/auth"
)

// Authenticator returns a Huma middleware that verifies bearer credentials.
//
// Operations opt in via auth.MetadataKey metadata: required operations reject
// anonymous requests with 401. A token, when present, must always be valid;
// on success the creator identity is placed in the request context.
func Authenticator(api huma.API, manager *auth.Manager) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		required := authRequired(ctx)

		token := bearerToken(ctx.Header("Authorization"))
		if token == "" {
			if required {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Authentication required")

				return
			}

			next(ctx)

			return
		}

		creatorID, err := manager.Verify(token)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid credentials")

			return
		}

		ctx = huma.WithContext(ctx, auth.ContextWithCreator(ctx.Context(), creatorID))

		next(ctx)
	}
}

func authRequired(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	cfg, ok := op.Metadata[auth.MetadataKey].(auth.EndpointConfig)

	return ok && cfg.Required
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
