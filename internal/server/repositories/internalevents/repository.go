package internalevents

import "context"

type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Record marks name as happened. Recording twice is not an error.
	Record(ctx context.Context, name string) error
}
