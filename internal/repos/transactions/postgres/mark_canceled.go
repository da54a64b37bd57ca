package transactions

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/transactions"
)

func (r *transactionsRepo) MarkCanceled(tx *sql.Tx, playerID, txnID string) error {
	res, err := tx.Exec(`
		UPDATE transactions
		SET canceled = TRUE
		WHERE player_id = $1
		  AND id = $2
	`, playerID, txnID)
	if err != nil {
		return fmt.Errorf("mark canceled: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return transactions.ErrTransactionNotFound
	}

	return nil
}
