package players

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/playerwallet/internal/infra/pgtestutil"
)

func TestPlayers_LockAndGetBalance_Table(t *testing.T) {
	t.Parallel()

	type seedFn func(db *sql.DB, t *testing.T)
	type tc struct {
		name        string
		seed        seedFn
		playerID    string
		wantBalance int64
		wantErr     bool // true => expect error (e.g., player not found)
	}

	upsert := func(db *sql.DB, id string, bal int64, t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO players (id, balance) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance
		`, id, bal)
		if err != nil {
			t.Fatalf("seed upsert player(%s): %v", id, err)
		}
	}

	tests := []tc{
		{
			name:        "player_exists_zero_balance",
			seed:        func(db *sql.DB, t *testing.T) { upsert(db, "p1", 0, t) },
			playerID:    "p1",
			wantBalance: 0,
		},
		{
			name:        "player_exists_positive_balance",
			seed:        func(db *sql.DB, t *testing.T) { upsert(db, "p2", 12345, t) },
			playerID:    "p2",
			wantBalance: 12345,
		},
		{
			name:     "player_not_found",
			seed:     func(_ *sql.DB, _ *testing.T) {},
			playerID: "missing",
			wantErr:  true, // expect wrapped sql.ErrNoRows
		},
		{
			name: "player_exists_large_balance",
			seed: func(db *sql.DB, t *testing.T) {
				// within BIGINT but large enough to matter (9e14 cents)
				upsert(db, "p3", int64(900_000_000_000_000), t)
			},
			playerID:    "p3",
			wantBalance: int64(900_000_000_000_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			bal, err := repo.LockAndGetBalance(tx, tt.playerID)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil (balance=%d)", bal)
				}
				if !errors.Is(err, sql.ErrNoRows) {
					t.Fatalf("expected sql.ErrNoRows, got: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bal != tt.wantBalance {
				t.Fatalf("balance mismatch: want %d, got %d", tt.wantBalance, bal)
			}

			err = tx.Commit()
			if err != nil {
				t.Fatalf("commit: %v", err)
			}
		})
	}
}
