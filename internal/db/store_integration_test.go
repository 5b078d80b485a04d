package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreIntegration exercises the real SQL against a scratch Postgres.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, InitTestDB("../../migrations"))

	store := TestStore

	t.Run("users", func(t *testing.T) {
		u, err := store.CreateUser("Test User", "store-it@example.com", "hashedpassword")
		require.NoError(t, err)
		assert.Greater(t, u.ID, 0)

		byEmail, err := store.GetUserByEmail("store-it@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		// duplicate email violates the unique constraint
		_, err = store.CreateUser("Other", "store-it@example.com", "hashedpassword")
		assert.Error(t, err)
	})

	t.Run("listings", func(t *testing.T) {
		owner, err := store.CreateUser("Owner", "store-it-owner@example.com", "hashedpassword")
		require.NoError(t, err)

		logo := "logos/abc.png"
		l, err := store.CreateListing(owner.ID,
			"Rust Developer", "Acme", "Remote",
			"https://acme.test", "jobs@acme.test",
			"rust,backend", "Rust job opportunity", &logo)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, l.UserID)

		_, err = store.CreateListing(owner.ID,
			"React Developer", "Acme", "Remote",
			"https://acme.test", "jobs@acme.test",
			"javascript,react", "React job opportunity", nil)
		require.NoError(t, err)

		byTag, err := store.FilterListings("rust", "")
		require.NoError(t, err)
		assert.Len(t, byTag, 1)
		assert.Equal(t, "rust,backend", byTag[0].Tags)

		bySearch, err := store.FilterListings("", "rust")
		require.NoError(t, err)
		assert.Len(t, bySearch, 1)
		assert.Equal(t, "Rust Developer", bySearch[0].Title)

		mine, err := store.ListListingsByUser(owner.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		require.NoError(t, store.UpdateListing(l.ID,
			"Updated Listing", "Updated Company", "Updated Location",
			"https://updated.test", "updated@acme.test",
			"updated,listing", "Updated description", nil))
		updated, err := store.GetListingByID(l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Listing", updated.Title)
		// nil logo keeps the stored path
		require.NotNil(t, updated.Logo)
		assert.Equal(t, logo, *updated.Logo)

		require.NoError(t, store.DeleteListing(l.ID))
		_, err = store.GetListingByID(l.ID)
		assert.Error(t, err)
	})
}
