package backend

import (
	"context"

	"smartspend/internal/ledger"
)

// BackendResult contains the ledger instance. Closing the store releases
// every resource the backend holds.
type BackendResult struct {
	Store ledger.Store
}

// Factory creates ledger backends based on configuration
type Factory interface {
	// CreateBackend creates a ledger based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
