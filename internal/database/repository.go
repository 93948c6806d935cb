package database

import (
	"database/sql"

	"github.com/thenoetrevino/embudo/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*ColumnRepo
	cards *ItemRepo[models.Card]
	deals *ItemRepo[models.Deal]
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		BoardRepo:  &BoardRepo{db: db},
		ColumnRepo: &ColumnRepo{db: db},
		cards:      NewCardRepo(db),
		deals:      NewDealRepo(db),
	}
}

// Cards returns the project board item repository.
func (r *Repository) Cards() ItemRepository[models.Card] {
	return r.cards
}

// Deals returns the pipeline item repository.
func (r *Repository) Deals() ItemRepository[models.Deal] {
	return r.deals
}
