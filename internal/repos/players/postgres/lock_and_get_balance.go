package players

import (
	"database/sql"
	"fmt"
)

func (r *playersRepo) LockAndGetBalance(tx *sql.Tx, playerID string) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance
		FROM players
		WHERE id = $1
		FOR UPDATE
	`, playerID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}
