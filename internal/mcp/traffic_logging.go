package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const maxLoggedPayload = 2048

// redactedKeys never reach the log.
var redactedKeys = map[string]bool{"password": true, "generated_password": true}

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{"direction", direction, "method", method, "session_id", safeSessionID(req)}
			logger.Debug("mcp traffic", append(attrs, "stage", "request", "params", formatPayload(safeParams(req)))...)

			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			attrs = append(attrs, "stage", "response", "result", formatPayload(result))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp traffic", attrs...)

			return result, err
		}
	}
}

func safeSessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

// formatPayload renders payload as JSON with secrets masked, including
// secrets inside JSON carried as text (tool arguments and text content).
func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err == nil {
		if masked, err := json.Marshal(redact(tree)); err == nil {
			data = masked
		}
	}
	if len(data) > maxLoggedPayload {
		return string(data[:maxLoggedPayload]) + "…"
	}
	return string(data)
}

func redact(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if redactedKeys[k] {
				node[k] = "***"
				continue
			}
			node[k] = redact(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = redact(child)
		}
		return node
	case string:
		trimmed := strings.TrimSpace(node)
		if !strings.HasPrefix(trimmed, "{") {
			return node
		}
		var inner any
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return node
		}
		masked, err := json.Marshal(redact(inner))
		if err != nil {
			return node
		}
		return string(masked)
	default:
		return v
	}
}
