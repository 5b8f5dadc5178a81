package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/middleware"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/stats"
	"github.com/okami-ct/okami-dashboard/internal/store"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

var errTimeout = appErrors.New("TIMEOUT", http.StatusGatewayTimeout, "Tempo de resposta esgotado")

func storesFromContext(c *gin.Context) (*store.Registry, bool) {
	registry := middleware.Stores(c)
	if registry == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return registry, true
}

// bindInput decodes the JSON body into dst and validates it. It writes the error response
// itself and reports whether the handler may continue.
func bindInput(c *gin.Context, validate *validator.Validate, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return validInput(c, validate, dst)
}

func validInput(c *gin.Context, validate *validator.Validate, input interface{}) bool {
	if err := validate.Struct(input); err != nil {
		if fields := dto.FieldErrors(err); len(fields) > 0 {
			response.Invalid(c, fields)
			return false
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// storeFailure answers with the failure of a store action, using the message the store
// recorded for the view when there is one.
func storeFailure(c *gin.Context, err error, message string) {
	response.Error(c, failureOf(err, message))
}

// staleFailure is storeFailure for reads: the data loaded before the failed refresh is
// still sent so the view can show it under the error.
func staleFailure(c *gin.Context, err error, message string, data interface{}) {
	response.Stale(c, failureOf(err, message), data, nil)
}

func failureOf(err error, message string) *appErrors.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, errTimeout.Code, errTimeout.Status, errTimeout.Message)
	}
	appErr := appErrors.FromError(err)
	if message != "" && !errors.Is(err, store.ErrUnsupported) {
		appErr = appErrors.Clone(appErr, message)
	}
	return appErr
}

// settled reports whether a store action may be rendered. A superseded read is not a
// failure: a newer request owns the state.
func settled(err error) bool {
	return err == nil || errors.Is(err, store.ErrSuperseded)
}

func renderState[T any](c *gin.Context, status int, state store.State[T], meta map[string]interface{}) {
	pagination := state.Pagination
	response.JSON(c, status, state, &pagination, stateMeta(state, meta))
}

// renderStaleState sends the list state kept after a failed refresh, with the failure.
func renderStaleState[T any](c *gin.Context, err error, state store.State[T]) {
	pagination := state.Pagination
	response.Stale(c, failureOf(err, state.Error), state, &pagination, stateMeta(state, nil))
}

func stateMeta[T any](state store.State[T], meta map[string]interface{}) map[string]interface{} {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	window := stats.PageRange(state.Pagination)
	meta["window"] = window
	meta["footer"] = window.String()
	return meta
}

// positiveQuery reads an optional positive integer. Zero means the key is absent.
func positiveQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a positive integer")
	}
	return n, nil
}

// filtersFromQuery collects every query parameter except page and limit. An empty value is
// kept so it clears the filter when merged.
func filtersFromQuery(c *gin.Context) models.Filter {
	filters := models.Filter{}
	for key, values := range c.Request.URL.Query() {
		if key == "page" || key == "limit" || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}
	return filters
}
