package model

import (
	"strings"
	"time"
)

// Listing is a single job posting. Tags is a flat comma-separated string;
// filtering on it is substring matching, not set membership.
type Listing struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Location    string    `db:"location"`
	Website     string    `db:"website"`
	Email       string    `db:"email"`
	Tags        string    `db:"tags"`
	Description string    `db:"description"`
	Logo        *string   `db:"logo"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TagList splits the comma-separated tags field for display.
func (l Listing) TagList() []string {
	var out []string
	for _, t := range strings.Split(l.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
