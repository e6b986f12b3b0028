package core

import "context"

// Ports for outbound adapters.
type (
	// MovementStore is the idempotent persistence contract. InsertIfAbsent
	// must be a single atomic insert-or-ignore keyed on the natural key;
	// a duplicate is reported through the bool, never as an error.
	MovementStore interface {
		InsertIfAbsent(ctx context.Context, m Movement) (inserted bool, err error)
	}

	// MovementLister returns stored movements for export, ordered by date
	// ascending and then by insertion order.
	MovementLister interface {
		ListMovements(ctx context.Context) ([]Movement, error)
	}
)
