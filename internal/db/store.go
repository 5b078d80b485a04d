// exposes a Store interface that is passed to web controllers
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/joblane-hq/joblane/internal/model"
)

type Store interface {
	// user functions
	CreateUser(name, email, hashedPassword string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// listing functions
	CreateListing(ownerID int, title, company, location, website, email, tags, description string, logo *string) (*model.Listing, error)
	GetListingByID(id int) (*model.Listing, error)
	UpdateListing(id int, title, company, location, website, email, tags, description string, logo *string) error
	DeleteListing(id int) error
	FilterListings(tag, search string) ([]model.Listing, error)
	ListListingsByUser(userID int) ([]model.Listing, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	if conn == nil {
		conn = DB
	}
	return &pgStore{db: conn}
}
