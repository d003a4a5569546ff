package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/bizpilot/internal/resource"
)

// Error codes returned in tool error results.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNetworkError     = "NETWORK_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

type validationDetails struct {
	Resource string                `json:"resource,omitempty"`
	Fields   []resource.FieldError `json:"fields"`
}

type networkDetails struct {
	Op         string `json:"op,omitempty"`
	Method     string `json:"method,omitempty"`
	URL        string `json:"url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

type notFoundDetails struct {
	Resource string      `json:"resource"`
	ID       resource.ID `json:"id"`
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	var verr *resource.ValidationError
	var nerr *resource.NotFoundError
	var netErr *resource.NetworkError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &verr):
		return &APIError{
			Code:         CodeValidationFailed,
			Message:      verr.Error(),
			Details:      validationDetails{Resource: verr.Resource, Fields: verr.Fields},
			RecoveryHint: "Fix the listed fields and retry",
		}
	case errors.As(err, &nerr):
		return &APIError{
			Code:         CodeNotFound,
			Message:      nerr.Error(),
			Details:      notFoundDetails{Resource: nerr.Resource, ID: nerr.ID},
			RecoveryHint: "List the collection to refresh local ids",
		}
	case errors.As(err, &netErr):
		return &APIError{
			Code:    CodeNetworkError,
			Message: netErr.Error(),
			Details: networkDetails{
				Op:         netErr.Op,
				Method:     netErr.Method,
				URL:        netErr.URL,
				StatusCode: netErr.StatusCode,
			},
			RecoveryHint: "Local data is unchanged; retry when the backend is reachable",
		}
	default:
		return &APIError{Code: CodeInternal, Message: err.Error()}
	}
}

// invalidArgument reports a tool argument that could not be converted into
// a draft field.
func invalidArgument(resourceName, field, message string) error {
	verr := &resource.ValidationError{Resource: resourceName}
	verr.Add(field, message)
	return verr
}
