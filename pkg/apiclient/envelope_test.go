package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeEntityShapes(t *testing.T) {
	cases := map[string]string{
		"bare":         `{"id":"1","name":"Ana"}`,
		"data":         `{"data":{"id":"1","name":"Ana"}}`,
		"data+success": `{"data":{"id":"1","name":"Ana"},"success":true}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeEntity[item](json.RawMessage(raw))
			require.NoError(t, err)
			assert.Equal(t, item{ID: "1", Name: "Ana"}, *got)
		})
	}
}

func TestDecodeEntityUnsuccessful(t *testing.T) {
	_, err := DecodeEntity[item](json.RawMessage(`{"success":false,"message":"Turma lotada"}`))
	require.Error(t, err)
	assert.Equal(t, "Turma lotada", appErrors.FromError(err).Message)

	_, err = DecodeEntity[item](nil)
	require.Error(t, err)
}

func TestDecodeListShapes(t *testing.T) {
	flat, err := DecodeList[item](json.RawMessage(`{"data":[{"id":"1"},{"id":"2"}],"total":25,"page":2,"limit":10,"totalPages":3}`))
	require.NoError(t, err)
	assert.Len(t, flat.Data, 2)
	assert.Equal(t, 25, flat.Total)
	assert.Equal(t, 2, flat.Page)
	assert.Equal(t, 10, flat.Limit)
	assert.Equal(t, 3, flat.TotalPages)

	nested, err := DecodeList[item](json.RawMessage(`{"data":[{"id":"1"}],"pagination":{"page":1,"limit":5,"total":1,"totalPages":1}}`))
	require.NoError(t, err)
	assert.Equal(t, 5, nested.Limit)
	assert.Equal(t, 1, nested.Total)

	bare, err := DecodeList[item](json.RawMessage(`[{"id":"1"},{"id":"2"},{"id":"3"}]`))
	require.NoError(t, err)
	assert.Equal(t, 3, bare.Total)
	assert.Equal(t, 1, bare.TotalPages)

	empty, err := DecodeList[item](json.RawMessage(`{"data":null,"total":0,"page":1,"limit":10,"totalPages":0}`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}

func TestDecodeSlice(t *testing.T) {
	got, err := DecodeSlice[item](json.RawMessage(`{"data":[{"id":"a"}],"success":true}`))
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a"}}, got)

	got, err = DecodeSlice[item](json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractMessage(t *testing.T) {
	assert.Equal(t, "nope", extractMessage([]byte(`{"message":"nope"}`)))
	assert.Equal(t, "bad", extractMessage([]byte(`{"error":"bad"}`)))
	assert.Equal(t, "deep", extractMessage([]byte(`{"error":{"message":"deep"}}`)))
	assert.Equal(t, "Bad Gateway", extractMessage([]byte(`Bad Gateway`)))
	assert.Equal(t, "", extractMessage(nil))
}

func TestCheckSuccess(t *testing.T) {
	require.NoError(t, CheckSuccess(json.RawMessage(`{"success":true,"message":"ok"}`)))
	require.NoError(t, CheckSuccess(json.RawMessage(`{"id":"1"}`)))
	err := CheckSuccess(json.RawMessage(`{"success":false,"error":"Não é possível excluir"}`))
	require.Error(t, err)
	assert.Equal(t, "Não é possível excluir", appErrors.FromError(err).Message)
}
