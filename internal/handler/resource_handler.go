package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/store"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// CollectionStore is the part of a resource store driven by list and form views.
type CollectionStore[T, In any] interface {
	Snapshot() store.State[T]
	FetchOne(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input In) (*T, error)
	Update(ctx context.Context, id string, input In) (*T, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, change store.ListChange) error
	ClearFilters(ctx context.Context) error
	ClearError()
}

// ResourceHandler exposes the list, detail and form actions of one resource store.
type ResourceHandler[T, In any] struct {
	pick     func(*store.Registry) CollectionStore[T, In]
	validate *validator.Validate
}

// NewResourceHandler builds a handler over the store selected by pick.
func NewResourceHandler[T, In any](pick func(*store.Registry) CollectionStore[T, In], validate *validator.Validate) *ResourceHandler[T, In] {
	return &ResourceHandler[T, In]{pick: pick, validate: validate}
}

// Register mounts the collection routes. write guards the mutating routes.
func (h *ResourceHandler[T, In]) Register(g gin.IRoutes, write ...gin.HandlerFunc) {
	g.GET("", h.List)
	g.DELETE("/filters", h.ClearFilters)
	g.POST("/clear-error", h.ClearError)
	g.GET("/:id", h.Get)
	g.POST("", chain(write, h.Create)...)
	g.PUT("/:id", chain(write, h.Update)...)
	g.DELETE("/:id", chain(write, h.Delete)...)
}

func (h *ResourceHandler[T, In]) resolve(c *gin.Context) (CollectionStore[T, In], bool) {
	registry, ok := storesFromContext(c)
	if !ok {
		return nil, false
	}
	return h.pick(registry), true
}

// List applies page size, filters and page from the query string with a single fetch
// and renders the resulting list state. Without parameters the current page is
// refreshed. A failed fetch still renders the items loaded before it.
func (h *ResourceHandler[T, In]) List(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}

	limit, err := positiveQuery(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := positiveQuery(c, "page")
	if err != nil {
		response.Error(c, err)
		return
	}

	change := store.ListChange{Limit: limit, Filters: filtersFromQuery(c), Page: page}
	if err := s.Apply(c.Request.Context(), change); !settled(err) {
		renderStaleState(c, err, s.Snapshot())
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), nil)
}

// ClearFilters drops every filter and reloads the first page.
func (h *ResourceHandler[T, In]) ClearFilters(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	if err := s.ClearFilters(c.Request.Context()); !settled(err) {
		renderStaleState(c, err, s.Snapshot())
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), nil)
}

// ClearError dismisses the error banner without reloading.
func (h *ResourceHandler[T, In]) ClearError(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	s.ClearError()
	renderState(c, http.StatusOK, s.Snapshot(), nil)
}

// Get loads one entity into the store selection.
func (h *ResourceHandler[T, In]) Get(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	if _, err := s.FetchOne(c.Request.Context(), c.Param("id")); !settled(err) {
		renderStaleState(c, err, s.Snapshot())
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), nil)
}

// Create validates the form and creates the entity.
func (h *ResourceHandler[T, In]) Create(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	var input In
	if !bindInput(c, h.validate, &input) {
		return
	}
	entity, err := s.Create(c.Request.Context(), input)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusCreated, s.Snapshot(), map[string]interface{}{"entity": entity})
}

// Update validates the form and saves the entity.
func (h *ResourceHandler[T, In]) Update(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	var input In
	if !bindInput(c, h.validate, &input) {
		return
	}
	entity, err := s.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), map[string]interface{}{"entity": entity})
}

// Delete removes the entity.
func (h *ResourceHandler[T, In]) Delete(c *gin.Context) {
	s, ok := h.resolve(c)
	if !ok {
		return
	}
	if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), nil)
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
