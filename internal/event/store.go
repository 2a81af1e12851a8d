package event

import "context"

// Store defines the persistence interface for events. The interaction layer
// calls Upsert on drag commit and editor save; Delete is only invoked when the
// user explicitly deletes an event.
type Store interface {
	// GetAll returns every stored base event.
	GetAll(ctx context.Context) ([]Event, error)

	// Get retrieves a single event by ID. Returns ErrEventNotFound if absent.
	Get(ctx context.Context, id string) (*Event, error)

	// Upsert inserts the event or replaces the stored event with the same ID.
	Upsert(ctx context.Context, e *Event) error

	// Delete removes the event with the given ID. Returns ErrEventNotFound
	// if no event has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
