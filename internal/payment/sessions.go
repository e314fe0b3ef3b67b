package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is the local ledger row for one gateway transaction. The provider
// owns payment truth; this table exists so support can answer "what did we
// send and what came back" without querying the gateway.
//
// Schema:
//
//	CREATE TABLE payment_sessions (
//	    transaction_id TEXT PRIMARY KEY,
//	    amount_minor   BIGINT NOT NULL,
//	    state          TEXT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Session struct {
	TransactionID string
	AmountMinor   int64
	State         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SessionRepo struct{ DB *pgxpool.Pool }

// RecordInitiated is conflict-safe: re-initiating the same transaction id
// leaves the original row untouched.
func (r *SessionRepo) RecordInitiated(ctx context.Context, transactionID string, amountMinor int64) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payment_sessions(transaction_id, amount_minor, state)
		VALUES ($1, $2, 'INITIATED')
		ON CONFLICT (transaction_id) DO NOTHING
	`, transactionID, amountMinor)
	return err
}

// Resolve records the provider-reported terminal state. Called from the
// status handler, which may run more than once per transaction; repeated
// resolves with the same state are harmless.
func (r *SessionRepo) Resolve(ctx context.Context, transactionID, state string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE payment_sessions SET state=$2, updated_at=now()
		WHERE transaction_id=$1
	`, transactionID, state)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, transactionID string) (*Session, error) {
	var s Session
	err := r.DB.QueryRow(ctx, `
		SELECT transaction_id, amount_minor, state, created_at, updated_at
		FROM payment_sessions WHERE transaction_id=$1
	`, transactionID).Scan(&s.TransactionID, &s.AmountMinor, &s.State, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
