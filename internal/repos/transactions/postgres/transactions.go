package transactions

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/transactions"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) Insert(tx *sql.Tx, txn transactions.Transaction) error {
	_, err := tx.Exec(`
		INSERT INTO transactions (id, player_id, type, value, canceled)
		VALUES ($1, $2, $3, $4, $5)
	`, txn.ID, txn.PlayerID, string(txn.Type), txn.Value, txn.Canceled)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return transactions.ErrDuplicateTransaction
			}
		}

		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}
