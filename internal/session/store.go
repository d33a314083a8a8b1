// Package session keeps the dashboard's per-session state: the latest
// diagnosis result, held until the next analysis overwrites it or the
// TTL expires. Nothing here is a prediction history.
package session

import (
	"context"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
)

// Store holds one result slot per dashboard session.
type Store interface {
	Save(ctx context.Context, sessionID string, result *diagnosis.Result) error
	Get(ctx context.Context, sessionID string) (*diagnosis.Result, bool, error)
	Clear(ctx context.Context, sessionID string) error
}
