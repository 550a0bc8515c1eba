package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
)

type contextKey int

const callerKey contextKey = iota

// callerFrom extracts the caller identity from context.
func callerFrom(ctx context.Context) identity.Caller {
	v, _ := ctx.Value(callerKey).(identity.Caller)
	return v
}

// identityMiddleware extracts the caller identity from transport headers.
// The identity is request-scoped: it lives only on the context and every
// membership decision downstream is recomputed against it.
func identityMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip identity for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing identity headers")
			}

			userID := strings.TrimSpace(extra.Header.Get("X-User-Id"))
			if userID == "" {
				return nil, fmt.Errorf("unauthorized: missing X-User-Id header")
			}

			role, err := identity.ParseRole(strings.TrimSpace(extra.Header.Get("X-User-Role")))
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}

			ctx = context.WithValue(ctx, callerKey, identity.Caller{ID: userID, Role: role})
			return next(ctx, method, req)
		}
	}
}

// defaultIdentityMiddleware injects a fixed caller. Stdio transport has no
// per-request headers, so the caller comes from configuration.
func defaultIdentityMiddleware(caller identity.Caller) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, callerKey, caller)
			return next(ctx, method, req)
		}
	}
}
