package i

import (
	dmn "github.com/beka-birhanu/maze-arena/domain"
	"github.com/google/uuid"
)

// MatchRepo defines the interface for match record persistence.
type MatchRepo interface {
	// Save inserts or updates a match record.
	Save(match *dmn.Match) error

	// ByID retrieves a match record by its unique ID.
	// Returns an error if the match is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Match, error)

	// Recent retrieves the most recently created match records, newest first.
	Recent(limit int64) ([]*dmn.Match, error)
}
