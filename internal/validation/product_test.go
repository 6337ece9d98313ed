package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestProduct_CreateValid(t *testing.T) {
	patch, err := Product(Create, []byte(`{"title":"Pen","price":1.5}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	require.NotNil(t, patch.Price)
	assert.Equal(t, "Pen", *patch.Title)
	assert.Equal(t, 1.5, *patch.Price)
}

func TestProduct_NumericStringPrice(t *testing.T) {
	patch, err := Product(Create, []byte(`{"title":"Pen","price":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, 12.0, *patch.Price)
}

func TestProduct_TitleLength(t *testing.T) {
	cases := map[string]string{
		"too short":  `{"title":"Pn","price":1}`,
		"too long":   `{"title":"abcdefghijklmnopqrstuvwxyzabcde","price":1}`,
		"not string": `{"title":123,"price":1}`,
		"missing":    `{"price":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			errs := fieldErrors(t, func() error { _, err := Product(Create, []byte(body)); return err }())
			assert.Equal(t, Errors{{Field: "title", Message: MsgTitle}}, errs)
		})
	}
}

func TestProduct_TitleBoundaries(t *testing.T) {
	_, err := Product(Create, []byte(`{"title":"abc","price":1}`))
	assert.NoError(t, err)
	_, err = Product(Create, []byte(`{"title":"abcdefghijklmnopqrstuvwxyzabcd","price":1}`))
	assert.NoError(t, err)
	// runes, not bytes
	_, err = Product(Create, []byte(`{"title":"ручка","price":1}`))
	assert.NoError(t, err)
}

func TestProduct_PriceRejectsSymbols(t *testing.T) {
	for _, price := range []string{`-1`, `"1,5"`, `"$3"`, `1e3`, `"abc"`, `true`, `null`, `"1."`} {
		t.Run(price, func(t *testing.T) {
			_, err := Product(Create, []byte(`{"title":"Pen","price":`+price+`}`))
			errs := fieldErrors(t, err)
			assert.Equal(t, Errors{{Field: "price", Message: MsgPrice}}, errs)
		})
	}
}

func TestProduct_UnknownFieldsCollectedWithOthers(t *testing.T) {
	_, err := Product(Create, []byte(`{"title":"Pn","price":1,"color":"red","amount":3}`))
	errs := fieldErrors(t, err)
	assert.Equal(t, Errors{
		{Field: "amount", Message: MsgUnknownField},
		{Field: "color", Message: MsgUnknownField},
		{Field: "title", Message: MsgTitle},
	}, errs)
}

func TestProduct_UnknownFieldAloneFails(t *testing.T) {
	_, err := Product(Create, []byte(`{"title":"Pen","price":1,"id":"x"}`))
	errs := fieldErrors(t, err)
	assert.Equal(t, Errors{{Field: "id", Message: MsgUnknownField}}, errs)
}

func TestProduct_UpdateIsPartial(t *testing.T) {
	patch, err := Product(Update, []byte(`{"price":2}`))
	require.NoError(t, err)
	assert.Nil(t, patch.Title)
	assert.Equal(t, 2.0, *patch.Price)

	_, err = Product(Update, []byte(`{"title":"x"}`))
	assert.Equal(t, Errors{{Field: "title", Message: MsgTitle}}, fieldErrors(t, err))
}

func TestProduct_UpdateRejectsEmptyBody(t *testing.T) {
	_, err := Product(Update, []byte(`{}`))
	assert.Equal(t, Errors{{Field: "body", Message: MsgEmptyUpdate}}, fieldErrors(t, err))
}

func TestProduct_MalformedBody(t *testing.T) {
	for _, body := range []string{``, `[]`, `{"title":`, `"Pen"`} {
		_, err := Product(Create, []byte(body))
		assert.Equal(t, Errors{{Field: "body", Message: MsgInvalidBody}}, fieldErrors(t, err), body)
	}
}
