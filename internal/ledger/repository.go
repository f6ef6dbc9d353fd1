package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Filter narrows an entry listing by date range and size.
type Filter struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Repository provides read access to tenant ledger entries.
type Repository interface {
	ListEntries(ctx context.Context, ownerID string, filter Filter) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds a pgx backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListEntries(ctx context.Context, ownerID string, filter Filter) ([]Entry, error) {
	query := `SELECT id, account_type, description, debit_amount, credit_amount, owner_id, created_at
		FROM accounting_entries WHERE owner_id = $1`
	args := []interface{}{ownerID}
	argCount := 1

	if !filter.From.IsZero() {
		argCount++
		query += ` AND created_at >= $` + strconv.Itoa(argCount)
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		argCount++
		query += ` AND created_at <= $` + strconv.Itoa(argCount)
		args = append(args, filter.To)
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var accountType string
		if err := rows.Scan(&e.ID, &accountType, &e.Description, &e.DebitAmount, &e.CreditAmount, &e.OwnerID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledger: scan entry: %w", err)
		}
		at, err := ParseAccountType(accountType)
		if err != nil {
			return nil, err
		}
		e.AccountType = at
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list entries: %w", err)
	}
	return entries, nil
}
