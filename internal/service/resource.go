package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

// apiClient is the transport the services need from pkg/apiclient.
type apiClient interface {
	Do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error)
	Upload(ctx context.Context, path string, fields map[string]string, file apiclient.File) (json.RawMessage, error)
}

// resource maps the CRUD verbs of one REST collection to single HTTP calls.
type resource[T any] struct {
	api  apiClient
	base string
}

func newResource[T any](api apiClient, base string) resource[T] {
	return resource[T]{api: api, base: base}
}

func (r resource[T]) path(elems ...string) (string, error) {
	return joinPath(r.base, elems...)
}

// joinPath appends escaped segments to base. Empty, "." and ".." segments are rejected.
func joinPath(base string, elems ...string) (string, error) {
	var b strings.Builder
	b.WriteString(base)
	for _, elem := range elems {
		if err := ValidateID(elem); err != nil {
			return "", err
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(elem))
	}
	return b.String(), nil
}

// ValidateID rejects ids that cannot be used as a single path segment.
func ValidateID(id string) error {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return appErrors.Clone(appErrors.ErrValidation, "identificador inválido")
	}
	return nil
}

func (r resource[T]) list(ctx context.Context, query models.ListQuery) (*models.ListResult[T], error) {
	raw, err := r.api.Do(ctx, http.MethodGet, r.base, query.Values(), nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeList[T](raw)
}

func (r resource[T]) get(ctx context.Context, id string) (*T, error) {
	p, err := r.path(id)
	if err != nil {
		return nil, err
	}
	raw, err := r.api.Do(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[T](raw)
}

func (r resource[T]) create(ctx context.Context, input interface{}) (*T, error) {
	raw, err := r.api.Do(ctx, http.MethodPost, r.base, nil, input)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[T](raw)
}

func (r resource[T]) update(ctx context.Context, id string, input interface{}) (*T, error) {
	p, err := r.path(id)
	if err != nil {
		return nil, err
	}
	raw, err := r.api.Do(ctx, http.MethodPut, p, nil, input)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[T](raw)
}

func (r resource[T]) delete(ctx context.Context, id string) error {
	p, err := r.path(id)
	if err != nil {
		return err
	}
	raw, err := r.api.Do(ctx, http.MethodDelete, p, nil, nil)
	if err != nil {
		return err
	}
	return acknowledge(raw)
}

func (r resource[T]) slice(ctx context.Context, elems ...string) ([]T, error) {
	p, err := r.path(elems...)
	if err != nil {
		return nil, err
	}
	raw, err := r.api.Do(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeSlice[T](raw)
}

// fetchSlice reads a related collection of a different entity type.
func fetchSlice[T any](ctx context.Context, api apiClient, p string) ([]T, error) {
	raw, err := api.Do(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeSlice[T](raw)
}

// acknowledge checks a body-less or {success} reply.
func acknowledge(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	return apiclient.CheckSuccess(raw)
}
