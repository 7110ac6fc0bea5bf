package schema

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brandForm struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Notes    string `json:"notes"`
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(brandForm{Name: "Acme", Location: "loc-1"}))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(brandForm{Notes: "only optional field set"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "required", verr.Fields[0].Rule)
	assert.Equal(t, "location", verr.Fields[1].Field)
}

func TestOptionalDecimalUnmarshal(t *testing.T) {
	var form struct {
		Price OptionalDecimal `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50"}`), &form))
	assert.True(t, form.Price.Valid)
	assert.True(t, form.Price.Value.Equal(decimal.RequireFromString("12.50")))

	require.NoError(t, json.Unmarshal([]byte(`{"price":7}`), &form))
	assert.True(t, form.Price.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"price":""}`), &form))
	assert.False(t, form.Price.Valid, "empty string is unset, not zero")

	require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &form))
	assert.False(t, form.Price.Valid)

	assert.Error(t, json.Unmarshal([]byte(`{"price":"abc"}`), &form))
}

func TestOptionalDecimalMarshal(t *testing.T) {
	raw, err := json.Marshal(NewOptionalDecimal(decimal.RequireFromString("3.14")))
	require.NoError(t, err)
	assert.Equal(t, `"3.14"`, string(raw))

	raw, err = json.Marshal(OptionalDecimal{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestUnsetOptionalsOmittedFromPayload(t *testing.T) {
	raw, err := json.Marshal(ProductPayload{Name: "Widget", SKU: "W-1"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "price")
	assert.NotContains(t, string(raw), "cost")

	raw, err = json.Marshal(StockPayload{ProductID: "p-1"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "quantity")
	assert.NotContains(t, string(raw), "alertQuantity")

	raw, err = json.Marshal(ProductPayload{
		Name:  "Widget",
		SKU:   "W-1",
		Price: NewOptionalDecimal(decimal.RequireFromString("9.99")),
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":"9.99"`)
}

func TestOptionalIntUnmarshal(t *testing.T) {
	var form struct {
		Qty OptionalInt `json:"qty"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"qty":"42"}`), &form))
	assert.True(t, form.Qty.Valid)
	assert.Equal(t, int64(42), form.Qty.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"qty":0}`), &form))
	assert.True(t, form.Qty.Valid, "explicit zero is set")

	require.NoError(t, json.Unmarshal([]byte(`{"qty":""}`), &form))
	assert.False(t, form.Qty.Valid)

	assert.Error(t, json.Unmarshal([]byte(`{"qty":"4.5"}`), &form))
}

func TestOptionalIntMarshal(t *testing.T) {
	raw, err := json.Marshal(NewOptionalInt(9))
	require.NoError(t, err)
	assert.Equal(t, "9", string(raw))

	raw, err = json.Marshal(OptionalInt{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
