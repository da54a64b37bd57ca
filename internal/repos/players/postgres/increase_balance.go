package players

import (
	"database/sql"
	"fmt"
)

func (r *playersRepo) IncreaseBalance(tx *sql.Tx, playerID string, amount int64) error {
	_, err := tx.Exec(`
		UPDATE players
		SET balance = balance + $2
		WHERE id = $1
	`, playerID, amount)
	if err != nil {
		return fmt.Errorf("increase balance: %w", err)
	}

	return nil
}
