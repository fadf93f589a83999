package sheets

import (
	"context"

	"spendtrack/internal/core"
)

// TransactionWriter is the outbound port for the export worker. The
// spreadsheet is an append-only mirror of the ledger; deletes are not
// propagated.
type TransactionWriter interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
}
