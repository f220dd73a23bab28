package repository

import (
	"context"
	"errors"
)

// ErrTxClosed is returned by Commit or Rollback on a finished transaction.
// Store implementations translate their driver's equivalent into it.
var ErrTxClosed = errors.New("tx is closed")

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
