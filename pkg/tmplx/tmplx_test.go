package tmplx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("plain field", func(t *testing.T) {
		tmpl := MustParse("", `Hello, {{.Name}}!`)
		got, err := tmpl.Render(map[string]any{"Name": "bottle"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, bottle!", got)
	})

	t.Run("missing key is an error", func(t *testing.T) {
		tmpl := MustParse("", `{{.Missing}}`)
		_, err := tmpl.Render(map[string]any{})
		require.ErrorIs(t, err, ErrRenderTemplate)
	})

	t.Run("deterministic", func(t *testing.T) {
		tmpl := MustParse("", `{{.A}} and {{.B}}`)
		data := map[string]any{"A": "x", "B": "y"}
		first, err := tmpl.Render(data)
		require.NoError(t, err)
		second, err := tmpl.Render(data)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("invalid template", func(t *testing.T) {
		_, err := Parse("", `{{.Name`)
		require.ErrorIs(t, err, ErrParseTemplate)
	})

	t.Run("with custom func", func(t *testing.T) {
		tmpl, err := Parse("", `{{upper "abc"}}`,
			WithFunc("upper", func(s string) string { return "ABC" }))
		require.NoError(t, err)
		got, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "ABC", got)
	})
}

func TestDefaultFuncs(t *testing.T) {
	t.Parallel()

	t.Run("quote", func(t *testing.T) {
		got, err := MustParse("", `{{quote .V}}`).Render(map[string]any{"V": "a\"b"})
		require.NoError(t, err)
		assert.Equal(t, `"a\"b"`, got)
	})

	t.Run("json", func(t *testing.T) {
		got, err := MustParse("", `{{json .V}}`).Render(map[string]any{"V": map[string]any{"a": 1}})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, got)
	})

	t.Run("default with empty value", func(t *testing.T) {
		got, err := MustParse("", `{{default "n/a" .V}}`).Render(map[string]any{"V": ""})
		require.NoError(t, err)
		assert.Equal(t, "n/a", got)
	})

	t.Run("jsonGet", func(t *testing.T) {
		got, err := MustParse("", `{{jsonGet "cost.estimated_range_INR" .Raw}}`).
			Render(map[string]any{"Raw": `{"cost":{"estimated_range_INR":"100-200"}}`})
		require.NoError(t, err)
		assert.Equal(t, "100-200", got)
	})
}
