package db

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/model"
)

const listingColumns = `id, user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at`

func (s *pgStore) CreateListing(
	ownerID int,
	title, company, location, website, email, tags, description string,
	logo *string,
) (*model.Listing, error) {
	var l model.Listing
	query := `
	INSERT INTO listings
	(user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	RETURNING ` + listingColumns + `;`

	if err := s.db.Get(&l, query,
		ownerID,
		title,
		company,
		location,
		website,
		email,
		tags,
		description,
		logo,
	); err != nil {
		log.Error().Err(err).Int("owner", ownerID).Msg("failed to create listing")
		return nil, err
	}
	return &l, nil
}

// GetListingByID fetches one listing. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetListingByID(id int) (*model.Listing, error) {
	var l model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1;`

	err := s.db.Get(&l, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("id", id).Msg("failed to get listing by id")
		return nil, err
	}
	return &l, nil
}

// UpdateListing rewrites all form-editable fields. A nil logo keeps the
// stored file path, mirroring an edit submission without a new upload.
func (s *pgStore) UpdateListing(
	id int,
	title, company, location, website, email, tags, description string,
	logo *string,
) error {
	res, err := s.db.Exec(`
		UPDATE listings
		SET title       = $2,
		company     = $3,
		location    = $4,
		website     = $5,
		email       = $6,
		tags        = $7,
		description = $8,
		logo        = COALESCE($9, logo),
		updated_at  = now()
		WHERE id = $1;`,
		id, title, company, location, website, email, tags, description, logo,
	)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update listing")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *pgStore) DeleteListing(id int) error {
	_, err := s.db.Exec(`DELETE FROM listings WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete listing")
	}
	return err
}

// FilterListings returns the visible set for the index view. An empty tag and
// search return everything, most recent first. Matching is case-insensitive
// substring containment; tag and search combine as an intersection.
func (s *pgStore) FilterListings(tag, search string) ([]model.Listing, error) {
	query, args := buildListingFilter(tag, search)

	var all []model.Listing
	if err := s.db.Select(&all, query, args...); err != nil {
		log.Error().Err(err).Str("tag", tag).Str("search", search).Msg("failed to filter listings")
		return nil, err
	}
	return all, nil
}

// buildListingFilter composes the filter query the way search parameters
// arrive: each present parameter appends one ILIKE condition.
func buildListingFilter(tag, search string) (string, []interface{}) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`

	args := []interface{}{}
	argCount := 0

	if tag != "" {
		argCount++
		query += ` AND tags ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+tag+"%")
	}

	if search != "" {
		argCount++
		n := strconv.Itoa(argCount)
		query += ` AND (title ILIKE $` + n + ` OR description ILIKE $` + n + `)`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY created_at DESC;`
	return query, args
}

func (s *pgStore) ListListingsByUser(userID int) ([]model.Listing, error) {
	var all []model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE user_id = $1 ORDER BY created_at DESC;`

	if err := s.db.Select(&all, query, userID); err != nil {
		log.Error().Err(err).Int("user", userID).Msg("failed to list listings by user")
		return nil, err
	}
	return all, nil
}
