package sheets

import (
	"context"

	"folio/internal/core"
)

// Ports for outbound ledger adapters.
type (
	// LedgerAppender mirrors a logged transaction to an external ledger,
	// returning an adapter-specific row reference.
	LedgerAppender interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}
)
