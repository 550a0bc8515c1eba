package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs every request/response pair at debug level,
// tagged with the caller resolved by the identity middleware.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			log := logger.With("direction", direction, "method", method, "caller_id", callerFrom(ctx).ID)
			log.Debug("mcp request", "params", encodePayload(requestParams(log, req)))

			result, err := next(ctx, method, req)

			// Notifications have no response worth logging.
			if !strings.HasPrefix(method, "notifications/") {
				if err != nil {
					log.Debug("mcp response", "result", encodePayload(result), "error", err)
				} else {
					log.Debug("mcp response", "result", encodePayload(result))
				}
			}
			return result, err
		}
	}
}

// requestParams tolerates partially constructed requests from the SDK. A
// recovered panic is logged rather than swallowed.
func requestParams(logger *slog.Logger, req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("request params unavailable", "panic", r)
		}
	}()
	return req.GetParams()
}

func encodePayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
