package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/crewbase/crewbase-mcp/internal/domain/suggest"
)

// Error codes returned in tool error envelopes.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeNotAuthorized   = "NOT_AUTHORIZED"
	CodeInternal        = "INTERNAL"
)

// APIError is the structured error payload a failed tool call carries.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Internal failures are
// masked behind a generic message so storage details never reach the agent.
func MapError(err error) *APIError {
	switch {
	case errors.Is(err, authz.ErrInvalidID),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, suggest.ErrInvalidInput):
		return &APIError{Code: CodeInvalidArgument, Message: err.Error()}
	case errors.Is(err, authz.ErrNotAuthorized):
		return &APIError{Code: CodeNotAuthorized, Message: err.Error()}
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrTaskNotFound),
		errors.Is(err, project.ErrUserNotFound),
		errors.Is(err, finance.ErrInvoiceNotFound):
		return &APIError{Code: CodeNotFound, Message: err.Error()}
	default:
		return &APIError{Code: CodeInternal, Message: "internal error"}
	}
}

// errorResult renders a domain error as an in-band tool failure.
func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	payload, marshalErr := json.Marshal(apiErr)
	if marshalErr != nil {
		payload = []byte(`{"code":"INTERNAL","message":"internal error"}`)
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(payload)}},
	}
}
