package players

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/players"
)

func (r *playersRepo) DecreaseBalance(tx *sql.Tx, playerID string, amount int64) error {
	res, err := tx.Exec(`
		UPDATE players
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, playerID, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return players.ErrInsufficientFunds
	}

	return nil
}
