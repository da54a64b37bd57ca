package players

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/players"
)

func (r *playersRepo) Exists(tx *sql.Tx, playerID string) error {
	var exists bool

	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)
	`, playerID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}

	if !exists {
		return players.ErrPlayerNotFound
	}

	return nil
}
