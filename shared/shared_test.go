package shared_test

import (
	"context"
	"farmstay/shared"
	"farmstay/shared/constant"
	"farmstay/shared/dto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: ptr(true)},
		{input: "0", expected: ptr(false)},
		{input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToNumbers(t *testing.T) {
	assert.Equal(t, ptr(4), shared.ConvertStringToInt("4"))
	assert.Nil(t, shared.ConvertStringToInt("four"))
	assert.Nil(t, shared.ConvertStringToInt(""))

	assert.Equal(t, ptr(2500.5), shared.ConvertStringToFloat("2500.5"))
	assert.Nil(t, shared.ConvertStringToFloat("cheap"))
}

func TestParseDate(t *testing.T) {
	date, err := shared.ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, 1, date.Day())

	_, err = shared.ParseDate("2025-13-01")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 1},
		{name: "exact", total: 20, limit: 10, expected: 2},
		{name: "remainder", total: 21, limit: 10, expected: 3},
		{name: "zero limit", total: 5, limit: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name      string   `db:"name"`
		Price     float64  `db:"price_per_night"`
		IsActive  *bool    `db:"is_active"`
		Amenities []string `db:"amenities"`
		Ignored   string
	}

	fields := shared.TransformFields(update{
		Name:     "Mango Grove",
		IsActive: ptr(false),
		Ignored:  "skip",
	}, "owner-1")

	assert.Equal(t, "Mango Grove", fields["name"])
	assert.Equal(t, ptr(false), fields["is_active"])
	assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "price_per_night")
	assert.NotContains(t, fields, "amenities")
	assert.Len(t, fields, 4)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("f-1", "id", "farmhouses")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(farmhouses.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "f-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:b-1", shared.BuildCacheKey("booking", "get", "b-1"))
	assert.Equal(t, "site_setting", shared.BuildCacheKey("site_setting"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	city := dto.NewFilterGroup(dto.Filter{Field: "city", Value: "Pune", Operator: dto.FilterOperatorEq})
	other := dto.NewFilterGroup(dto.Filter{Field: "city", Value: "Goa", Operator: dto.FilterOperatorEq})

	first := shared.BuildCacheKeyWithQuery("farmhouse:gets", params, city)
	again := shared.BuildCacheKeyWithQuery("farmhouse:gets", params, city)

	assert.Equal(t, first, again)
	assert.True(t, strings.HasPrefix(first, "farmhouse:gets:"))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("farmhouse:gets", params, other))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("farmhouse:gets", dto.QueryParams{Page: 2, Limit: 10}, city))
}

func TestActorAndRole(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, shared.Actor(context.Background()))
	assert.Empty(t, shared.Role(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)

	assert.Equal(t, "u-1", shared.Actor(ctx))
	assert.Equal(t, constant.RoleOwner, shared.Role(ctx))
}

func ptr[T any](v T) *T {
	return &v
}
