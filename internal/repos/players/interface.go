package players

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrPlayerNotFound = errors.New("player not found")

type Players interface {
	Exists(tx *sql.Tx, playerID string) error
	GetBalance(ctx context.Context, playerID string) (int64, error)
	LockAndGetBalance(tx *sql.Tx, playerID string) (int64, error)
	IncreaseBalance(tx *sql.Tx, playerID string, amount int64) error
	DecreaseBalance(tx *sql.Tx, playerID string, amount int64) error
}
