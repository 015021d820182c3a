package record

import (
	"testing"

	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlain(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		key     string
		value   string
		wantErr error
	}{
		{name: "simple", raw: "temp=0", key: "temp", value: "0"},
		{name: "name", raw: "name=Ana", key: "name", value: "Ana"},
		{name: "second segment only", raw: "a=5=6", key: "a", value: "5"},
		{name: "empty value", raw: "x=", key: "x", value: ""},
		{name: "carriage return kept", raw: "name=Ana\r", key: "name", value: "Ana\r"},
		{name: "no delimiter", raw: "garbage", wantErr: domain.ErrMissingDelimiter},
		{name: "empty", raw: "", wantErr: domain.ErrMissingDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParsePlain(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.raw, rec.Raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, rec.Key)
			assert.Equal(t, tt.value, rec.Value)
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Run("Reads Var Field", func(t *testing.T) {
		rec, err := ParseQuery("var=5&other=1", "var")
		require.NoError(t, err)
		assert.Equal(t, "5", rec.Value)
		assert.Equal(t, "var", rec.Key)
	})

	t.Run("Field Not First", func(t *testing.T) {
		rec, err := ParseQuery("a=1&var=Ana", "var")
		require.NoError(t, err)
		assert.Equal(t, "Ana", rec.Value)
	})

	t.Run("Decodes Escapes", func(t *testing.T) {
		rec, err := ParseQuery("var=Ana+Maria%21", "var")
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria!", rec.Value)
	})

	t.Run("Missing Field", func(t *testing.T) {
		_, err := ParseQuery("other=5", "var")
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("Trailing Carriage Return", func(t *testing.T) {
		rec, err := ParseQuery("var=7\r", "var")
		require.NoError(t, err)
		assert.Equal(t, "7", rec.Value)
	})

	t.Run("Malformed Escape", func(t *testing.T) {
		_, err := ParseQuery("var=%zz", "var")
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	plain := New(FormPlain, "")
	rec, err := plain.Parse("x=5")
	require.NoError(t, err)
	assert.Equal(t, "5", rec.Value)

	query := New(FormQuery, "")
	rec, err = query.Parse("var=5")
	require.NoError(t, err)
	assert.Equal(t, "5", rec.Value)

	_, err = query.Parse("x=5")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestParseForm(t *testing.T) {
	f, err := ParseForm("")
	require.NoError(t, err)
	assert.Equal(t, FormPlain, f)

	f, err = ParseForm("query")
	require.NoError(t, err)
	assert.Equal(t, FormQuery, f)

	_, err = ParseForm("xml")
	assert.Error(t, err)
}
