package transactions

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/transactions"
)

// LockForRollback loads the transaction row under FOR UPDATE so the
// canceled flag cannot flip underneath a concurrent rollback of the same id.
func (r *transactionsRepo) LockForRollback(tx *sql.Tx, playerID, txnID string) (transactions.Transaction, error) {
	var txn transactions.Transaction

	err := tx.QueryRow(`
		SELECT id, player_id, type, value, canceled
		FROM transactions
		WHERE player_id = $1
		  AND id = $2
		FOR UPDATE
	`, playerID, txnID).Scan(&txn.ID, &txn.PlayerID, &txn.Type, &txn.Value, &txn.Canceled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transactions.Transaction{}, transactions.ErrTransactionNotFound
		}

		return transactions.Transaction{}, fmt.Errorf("lock/get transaction: %w", err)
	}

	return txn, nil
}
