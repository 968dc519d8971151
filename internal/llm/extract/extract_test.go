package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFences(t *testing.T) {
	t.Parallel()

	t.Run("fenced with language tag", func(t *testing.T) {
		got := CleanFences("```json\n{\"a\":1}\n```")
		assert.Equal(t, "{\"a\":1}", got)
	})

	t.Run("fenced without language tag", func(t *testing.T) {
		got := CleanFences("```\n{\"a\":1}\n```")
		assert.Equal(t, "{\"a\":1}", got)
	})

	t.Run("no fences", func(t *testing.T) {
		got := CleanFences("  {\"a\":1}  ")
		assert.Equal(t, "{\"a\":1}", got)
	})

	t.Run("keeps json keys inside content", func(t *testing.T) {
		got := CleanFences("```json\n{\"json\":\"value\"}\n```")
		assert.Equal(t, "{\"json\":\"value\"}", got)
	})
}

func TestJSONObject(t *testing.T) {
	t.Parallel()

	t.Run("fenced object", func(t *testing.T) {
		obj, err := JSONObject("```json\n{\"a\":1}\n```")
		require.NoError(t, err)
		assert.Equal(t, float64(1), obj["a"])
	})

	t.Run("bare object", func(t *testing.T) {
		obj, err := JSONObject(`{"name":"bottle","price":25}`)
		require.NoError(t, err)
		assert.Equal(t, "bottle", obj["name"])
	})

	t.Run("not json at all", func(t *testing.T) {
		obj, err := JSONObject("not json at all")
		require.Error(t, err)
		assert.Nil(t, obj)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "not json at all", perr.Cleaned)
	})

	t.Run("truncated object is not repaired", func(t *testing.T) {
		_, err := JSONObject("```json\n{\"a\": 1,\n```")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("nested object", func(t *testing.T) {
		obj, err := JSONObject("```json\n{\"cost\":{\"estimated_range_INR\":\"100-200\"}}\n```")
		require.NoError(t, err)
		cost, ok := obj["cost"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "100-200", cost["estimated_range_INR"])
	})
}

func TestSplitSections(t *testing.T) {
	t.Parallel()

	t.Run("three sections", func(t *testing.T) {
		got := SplitSections("1. Foo 2. Bar 3. Baz")
		assert.Equal(t, Sections{
			Process:         "Foo",
			Estimate:        "Bar",
			Recommendations: "Baz",
		}, got)
	})

	t.Run("multiline sections", func(t *testing.T) {
		raw := "1. Mining and smelting\nacross regions\n2. Around 3 weeks\n3. Source locally\nwhere possible"
		got := SplitSections(raw)
		assert.Equal(t, "Mining and smelting\nacross regions", got.Process)
		assert.Equal(t, "Around 3 weeks", got.Estimate)
		assert.Equal(t, "Source locally\nwhere possible", got.Recommendations)
	})

	t.Run("missing third section", func(t *testing.T) {
		got := SplitSections("1. Foo 2. Bar")
		assert.Equal(t, "Foo", got.Process)
		assert.Equal(t, "Bar", got.Estimate)
		assert.Empty(t, got.Recommendations)
	})

	t.Run("missing first section", func(t *testing.T) {
		got := SplitSections("2. Bar 3. Baz")
		assert.Empty(t, got.Process)
		assert.Equal(t, "Bar", got.Estimate)
		assert.Equal(t, "Baz", got.Recommendations)
	})

	t.Run("no markers", func(t *testing.T) {
		got := SplitSections("free form text without numbering")
		assert.Equal(t, Sections{}, got)
	})

	t.Run("decimal numbers are not markers", func(t *testing.T) {
		got := SplitSections("1. Costs around 12.5 dollars 2. Two weeks 3. Reuse")
		assert.Equal(t, "Costs around 12.5 dollars", got.Process)
		assert.Equal(t, "Two weeks", got.Estimate)
		assert.Equal(t, "Reuse", got.Recommendations)
	})
}

func TestAsJSON(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		res := AsJSON("```json\n{\"a\":1}\n```")
		assert.Equal(t, KindJSON, res.Kind)
		assert.Equal(t, float64(1), res.JSON["a"])
		assert.Nil(t, res.Failure)
	})

	t.Run("failure is typed, never a guess", func(t *testing.T) {
		res := AsJSON("the product is made of PET plastic")
		assert.Equal(t, KindFailed, res.Kind)
		require.NotNil(t, res.Failure)
		assert.Nil(t, res.JSON)
	})
}

func TestAsSections(t *testing.T) {
	t.Parallel()

	res := AsSections("1. Foo 2. Bar 3. Baz")
	assert.Equal(t, KindSections, res.Kind)
	assert.Equal(t, "Foo", res.Sections.Process)
}
