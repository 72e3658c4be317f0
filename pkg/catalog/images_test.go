package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	assert.Contains(t, ImageURL("Chocolate"), "unsplash.com")
	assert.NotEqual(t, ImageURL("Chocolate"), ImageURL("Gummy"))

	// Unknown categories fall back to the default image.
	assert.Equal(t, ImageURL("Chocolate"), ImageURL("Savory"))
	assert.Equal(t, ImageURL("Chocolate"), ImageURL(""))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, len(categoryImages))

	seen := map[string]bool{}
	for _, c := range cats {
		assert.Equal(t, ImageURL(c.Category), c.ImageURL)
		assert.False(t, seen[c.Category], "no duplicate categories")
		seen[c.Category] = true
	}
}
