package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMergeRemovesEmptyValues(t *testing.T) {
	base := Filter{FilterSearch: "ana", FilterStatus: "active"}

	merged := base.Merge(Filter{FilterStatus: "", FilterBelt: "blue"})

	assert.Equal(t, Filter{FilterSearch: "ana", FilterBelt: "blue"}, merged)
	assert.Equal(t, "active", base[FilterStatus], "merge must not touch the receiver")
}

func TestListQueryValues(t *testing.T) {
	q := ListQuery{Filter: Filter{FilterStatus: "paid", FilterSearch: "  ", FilterReferenceMonth: "2026-10"}, Page: 2, Limit: 20}

	assert.Equal(t, "limit=20&page=2&reference_month=2026-10&status=paid", q.Values().Encode())
	assert.Empty(t, ListQuery{}.Values())
}

func TestDateAcceptsBackendLayouts(t *testing.T) {
	var payload struct {
		Due     Date `json:"due"`
		Created Date `json:"created"`
		Paid    Date `json:"paid"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2026-10-10","created":"2026-10-01T13:45:00.000Z","paid":null}`), &payload))

	assert.Equal(t, NewDate(2026, time.October, 10), payload.Due)
	assert.Equal(t, 13, payload.Created.Hour())
	assert.True(t, payload.Paid.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2026-10-10","created":"2026-10-01T13:45:00Z","paid":null}`, string(out))

	_, err = ParseDate("10/10/2026")
	assert.Error(t, err)
}

func TestMoneyAcceptsNumbersAndStrings(t *testing.T) {
	var amounts []Money
	require.NoError(t, json.Unmarshal([]byte(`[150, "89.90", "", null]`), &amounts))
	assert.Equal(t, []Money{150, 89.90, 0, 0}, amounts)

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "R$ 150,00", Money(150).String())
	assert.Equal(t, "R$ 1.234,50", Money(1234.5).String())
	assert.Equal(t, "R$ 1.000.000,00", Money(1000000).String())
	assert.Equal(t, "-R$ 20,00", Money(-20).String())
}

func TestUserRoleHomeRoute(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.HomeRoute())
	assert.Equal(t, "/student", RoleStudent.HomeRoute())
	assert.Equal(t, "/login", UserRole("guest").HomeRoute())
	assert.False(t, UserRole("guest").Valid())
}
