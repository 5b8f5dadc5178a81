package apiclient

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

// The backend is inconsistent about envelopes: some resources answer with the bare
// entity, others with {data, success}; lists come as {data, total, page, limit,
// totalPages}, {data, pagination} or a bare array. Everything is normalised here.

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Success    *bool              `json:"success"`
	Message    string             `json:"message"`
	Error      json.RawMessage    `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
	Total      *int               `json:"total"`
	Page       *int               `json:"page"`
	Limit      *int               `json:"limit"`
	TotalPages *int               `json:"totalPages"`
}

// DecodeEntity unwraps a single entity response.
func DecodeEntity[T any](raw json.RawMessage) (*T, error) {
	body, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || isNull(body) {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "empty response from server")
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
	}
	return &out, nil
}

// DecodeSlice unwraps a collection response that carries no pagination.
func DecodeSlice[T any](raw json.RawMessage) ([]T, error) {
	body, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || isNull(body) {
		return []T{}, nil
	}
	out := make([]T, 0)
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
	}
	return out, nil
}

// DecodeList unwraps a paginated list response. Pagination is copied verbatim.
func DecodeList[T any](raw json.RawMessage) (*models.ListResult[T], error) {
	trimmed := bytes.TrimSpace(raw)
	result := &models.ListResult[T]{Data: []T{}}
	if len(trimmed) == 0 || isNull(trimmed) {
		return result, nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &result.Data); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
		}
		result.Total = len(result.Data)
		result.Page = 1
		result.Limit = len(result.Data)
		if len(result.Data) > 0 {
			result.TotalPages = 1
		}
		return result, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
	}
	if err := env.failure(); err != nil {
		return nil, err
	}
	if len(env.Data) > 0 && !isNull(env.Data) {
		if err := json.Unmarshal(env.Data, &result.Data); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
		}
	}
	if env.Pagination != nil {
		result.Page = env.Pagination.Page
		result.Limit = env.Pagination.Limit
		result.Total = env.Pagination.Total
		result.TotalPages = env.Pagination.TotalPages
	}
	if env.Total != nil {
		result.Total = *env.Total
	}
	if env.Page != nil {
		result.Page = *env.Page
	}
	if env.Limit != nil {
		result.Limit = *env.Limit
	}
	if env.TotalPages != nil {
		result.TotalPages = *env.TotalPages
	}
	return result, nil
}

func unwrap(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
	}
	_, hasData := probe["data"]
	_, hasSuccess := probe["success"]
	if !hasData && !hasSuccess {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response from server")
	}
	if err := env.failure(); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (e envelope) failure() error {
	if e.Success == nil || *e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = errorText(e.Error)
	}
	if msg == "" {
		msg = "request was not successful"
	}
	return appErrors.FromStatus(http.StatusUnprocessableEntity, msg)
}

// extractMessage pulls a human readable message out of an error body.
func extractMessage(payload []byte) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] != '{' {
		if len(trimmed) > 200 {
			trimmed = trimmed[:200]
		}
		return string(trimmed)
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return errorText(env.Error)
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Message
	}
	return string(raw)
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// CheckSuccess reports an explicit {success:false} reply as an error.
func CheckSuccess(raw json.RawMessage) error {
	_, err := unwrap(raw)
	return err
}
