package models

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCodes(t *testing.T) {
	// Codes are a storage contract; these must never move.
	assert.Equal(t, 0, CategoryLiterature.Code())
	assert.Equal(t, 4, CategoryTechnology.Code())
	assert.Equal(t, 7, CategoryOthers.Code())
}

func TestCategoryFromCode(t *testing.T) {
	cat, ok := CategoryFromCode(4)
	require.True(t, ok)
	assert.Equal(t, CategoryTechnology, cat)

	_, ok = CategoryFromCode(-1)
	assert.False(t, ok)

	_, ok = CategoryFromCode(8)
	assert.False(t, ok)
}

func TestCategoryFromName(t *testing.T) {
	cat, ok := CategoryFromName("POETRY")
	require.True(t, ok)
	assert.Equal(t, CategoryPoetry, cat)

	// Names are exact; no case folding.
	_, ok = CategoryFromName("poetry")
	assert.False(t, ok)

	_, ok = CategoryFromName("COOKING")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 8)
	assert.Equal(t, CategoryLiterature, cats[0])
	assert.Equal(t, CategoryOthers, cats[7])
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(CategoryDrama)
	require.NoError(t, err)
	assert.Equal(t, `"DRAMA"`, string(data))

	var cat Category
	require.NoError(t, json.Unmarshal([]byte(`"ACTION"`), &cat))
	assert.Equal(t, CategoryAction, cat)

	err = json.Unmarshal([]byte(`"COOKING"`), &cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOKING")
}

func TestCategorySQL(t *testing.T) {
	v, err := CategoryThriller.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	var cat Category
	require.NoError(t, cat.Scan(int64(5)))
	assert.Equal(t, CategoryDrama, cat)

	err = cat.Scan(int64(99))
	require.Error(t, err)
}
