package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/repos/players"
)

func (r *playersRepo) GetBalance(ctx context.Context, playerID string) (int64, error) {
	var balance int64

	err := r.db.QueryRowContext(ctx, `
		SELECT balance
		FROM players
		WHERE id = $1
	`, playerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, players.ErrPlayerNotFound
		}

		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}
