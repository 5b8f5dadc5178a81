package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSONWritesPaginationAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, http.StatusOK, []string{"a"}, &models.Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3}, map[string]interface{}{"footer": "x"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	body := decode(t, rec)
	assert.JSONEq(t, `["a"]`, string(body["data"]))
	assert.JSONEq(t, `{"page":2,"limit":10,"total":25,"totalPages":3}`, string(body["pagination"]))
	assert.JSONEq(t, `{"footer":"x"}`, string(body["meta"]))
	assert.NotContains(t, body, "error")
}

func TestErrorUsesTypedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, appErrors.FromStatus(http.StatusNotFound, "Aluno não encontrado"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Aluno não encontrado","status":404}`, string(decode(t, rec)["error"]))
}

func TestErrorMapsUnknownToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInvalidListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Invalid(c, map[string]string{"name": "Campo obrigatório"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"fields":{"name":"Campo obrigatório"}}`, string(decode(t, rec)["meta"]))
}
