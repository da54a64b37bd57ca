package transactions

import (
	"database/sql"
	"errors"
)

var ErrDuplicateTransaction = errors.New("duplicate transaction")
var ErrTransactionNotFound = errors.New("transaction not found")

type Type string

const (
	TypeBet Type = "BET"
	TypeWin Type = "WIN"
)

// Transaction is one ledger entry. Type and Value are fixed at insert;
// Canceled flips false->true at most once, via MarkCanceled.
type Transaction struct {
	ID       string
	PlayerID string
	Type     Type
	Value    int64 // cents
	Canceled bool
}

type Transactions interface {
	Insert(tx *sql.Tx, txn Transaction) error
	LockForRollback(tx *sql.Tx, playerID, txnID string) (Transaction, error)
	MarkCanceled(tx *sql.Tx, playerID, txnID string) error
}
