package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListingFilter_NoParams(t *testing.T) {
	query, args := buildListingFilter("", "")

	assert.Empty(t, args)
	assert.NotContains(t, query, "ILIKE")
	assert.Contains(t, query, "ORDER BY created_at DESC")
}

func TestBuildListingFilter_TagOnly(t *testing.T) {
	query, args := buildListingFilter("rust", "")

	assert.Contains(t, query, "tags ILIKE $1")
	assert.NotContains(t, query, "title ILIKE")
	assert.Equal(t, []interface{}{"%rust%"}, args)
}

func TestBuildListingFilter_SearchOnly(t *testing.T) {
	query, args := buildListingFilter("", "Rust")

	assert.Contains(t, query, "(title ILIKE $1 OR description ILIKE $1)")
	assert.NotContains(t, query, "tags ILIKE")
	assert.Equal(t, []interface{}{"%Rust%"}, args)
}

func TestBuildListingFilter_TagAndSearchIntersect(t *testing.T) {
	query, args := buildListingFilter("php", "developer")

	assert.Contains(t, query, "tags ILIKE $1")
	assert.Contains(t, query, "(title ILIKE $2 OR description ILIKE $2)")
	assert.Equal(t, []interface{}{"%php%", "%developer%"}, args)
}
