package registry

import "context"

// Store tracks per-user favorites and search history.
//
// Registration is idempotent: registering a known user never clears
// existing data. Writes for unregistered users are silent no-ops, and
// reads for unknown users return empty results, never an error. Only
// storage I/O failures surface as errors.
type Store interface {
	// Register creates an empty record for userID if none exists yet.
	Register(ctx context.Context, userID string) error

	// AddFavorite adds title to the user's favorites set. Adding an
	// already-present title is a no-op.
	AddFavorite(ctx context.Context, userID, title string) error

	// Favorites returns the user's favorite titles.
	Favorites(ctx context.Context, userID string) ([]string, error)

	// RecordHistory appends query verbatim to the user's history log.
	RecordHistory(ctx context.Context, userID, query string) error

	// History returns the user's past queries in insertion order.
	History(ctx context.Context, userID string) ([]string, error)

	// UserIDs returns every registered user id.
	UserIDs(ctx context.Context) ([]string, error)
}
