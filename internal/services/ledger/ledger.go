package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/playerwallet/internal/infra/pgutils"
	"github.com/fastprodman/playerwallet/internal/repos/players"
	pgplayers "github.com/fastprodman/playerwallet/internal/repos/players/postgres"
	"github.com/fastprodman/playerwallet/internal/repos/transactions"
	pgtransactions "github.com/fastprodman/playerwallet/internal/repos/transactions/postgres"
)

// LedgerService owns the consistency between a player's balance and the
// transaction log. Every mutating operation runs in a single DB transaction
// holding the player row lock (FOR UPDATE) across the read-check-write
// sequence, so concurrent operations on the same player serialize while
// different players proceed independently.
type LedgerService struct {
	db      *sql.DB
	players players.Players
	txns    transactions.Transactions
	newID   func() string
}

func New(dbx *sql.DB) *LedgerService {
	return &LedgerService{
		db:      dbx,
		players: pgplayers.New(dbx),
		txns:    pgtransactions.New(dbx),
		newID:   newTransactionID,
	}
}

// GetBalance returns the player's balance (no locks; suitable for the GET endpoint).
func (s *LedgerService) GetBalance(ctx context.Context, playerID string) (int64, error) {
	balance, err := s.players.GetBalance(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// PlaceBet debits the stake and appends a BET transaction in one DB transaction:
//
// 1) Ensure player exists.
// 2) Lock player row (FOR UPDATE) and read balance.
// 3) Funds check against the locked balance -> InsufficientFunds code, no writes.
// 4) Guarded decrease + insert BET row; both commit together or neither does.
func (s *LedgerService) PlaceBet(ctx context.Context, playerID string, value int64) (BetResult, error) {
	var res BetResult

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.players.Exists(tx, playerID)
		if err != nil {
			return fmt.Errorf("check player exists: %w", err)
		}

		balance, err := s.players.LockAndGetBalance(tx, playerID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if balance < value {
			res = BetResult{
				Code:         CodeInsufficientFunds,
				PlayerID:     playerID,
				BalanceMinor: balance,
			}

			return nil // nothing was written
		}

		err = s.players.DecreaseBalance(tx, playerID, value)
		if err != nil {
			return fmt.Errorf("decrease balance: %w", err)
		}

		txnID := s.newID()

		err = s.txns.Insert(tx, transactions.Transaction{
			ID:       txnID,
			PlayerID: playerID,
			Type:     transactions.TypeBet,
			Value:    value,
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		res = BetResult{
			Code:          CodeOK,
			PlayerID:      playerID,
			BalanceMinor:  balance - value,
			TransactionID: txnID,
		}

		return nil
	})
	if err != nil {
		return BetResult{}, fmt.Errorf("place bet: %w", err)
	}

	return res, nil
}

// Win credits the amount and appends a WIN transaction. Same atomic pattern
// as PlaceBet, but a win always succeeds once the player is found.
func (s *LedgerService) Win(ctx context.Context, playerID string, value int64) (BetResult, error) {
	var res BetResult

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.players.Exists(tx, playerID)
		if err != nil {
			return fmt.Errorf("check player exists: %w", err)
		}

		balance, err := s.players.LockAndGetBalance(tx, playerID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		err = s.players.IncreaseBalance(tx, playerID, value)
		if err != nil {
			return fmt.Errorf("increase balance: %w", err)
		}

		txnID := s.newID()

		err = s.txns.Insert(tx, transactions.Transaction{
			ID:       txnID,
			PlayerID: playerID,
			Type:     transactions.TypeWin,
			Value:    value,
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		res = BetResult{
			Code:          CodeOK,
			PlayerID:      playerID,
			BalanceMinor:  balance + value,
			TransactionID: txnID,
		}

		return nil
	})
	if err != nil {
		return BetResult{}, fmt.Errorf("win: %w", err)
	}

	return res, nil
}

// Rollback reverses a bet exactly once. Decision order matters:
//
// 1) Lock the transaction by (player, id) -> ErrTransactionNotFound.
// 2) Already canceled -> OK with the current balance, no writes (safe to replay).
// 3) WIN transactions never roll back -> Invalid.
// 4) Caller value must match the stored value -> Invalid.
// 5) Credit the balance and set canceled in the same DB transaction.
//
// The transaction row lock is taken before the player row lock everywhere a
// rollback runs, and bets never touch existing transaction rows, so the two
// operations cannot deadlock.
func (s *LedgerService) Rollback(ctx context.Context, playerID, txnID string, value int64) (RollbackResult, error) {
	var res RollbackResult

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txn, err := s.txns.LockForRollback(tx, playerID, txnID)
		if err != nil {
			return fmt.Errorf("lock transaction: %w", err)
		}

		balance, err := s.players.LockAndGetBalance(tx, playerID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if txn.Canceled {
			res = RollbackResult{Code: CodeOK, BalanceMinor: balance}

			return nil
		}

		if txn.Type == transactions.TypeWin {
			res = RollbackResult{Code: CodeInvalid, BalanceMinor: balance}

			return nil
		}

		if value != txn.Value {
			res = RollbackResult{Code: CodeInvalid, BalanceMinor: balance}

			return nil
		}

		// Carried from the original contract; with the value-match guard above
		// it can only fire if balances were adjusted out of band.
		if value > balance {
			res = RollbackResult{Code: CodeInsufficientFundsToRollback, BalanceMinor: balance}

			return nil
		}

		err = s.players.IncreaseBalance(tx, playerID, value)
		if err != nil {
			return fmt.Errorf("increase balance: %w", err)
		}

		err = s.txns.MarkCanceled(tx, playerID, txnID)
		if err != nil {
			return fmt.Errorf("mark canceled: %w", err)
		}

		res = RollbackResult{Code: CodeOK, BalanceMinor: balance + value}

		return nil
	})
	if err != nil {
		return RollbackResult{}, fmt.Errorf("rollback: %w", err)
	}

	return res, nil
}
