package postgresql

import (
	"context"

	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool when the
// call is not transactional. Every repository method goes through this so it
// works inside and outside database.TxRunner boundaries.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
