package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchLimit is the maximum id count a single id-set query may carry.
// The document store rejects larger "id in (...)" sets, so listings are
// chunked and merged client-side.
const DefaultBatchLimit = 10

// Filter narrows a transaction listing by date range.
type Filter struct {
	From time.Time
	To   time.Time
}

// Repository provides read access to stock movements.
type Repository interface {
	ListByProductIDs(ctx context.Context, productIDs []string, filter Filter) ([]Transaction, error)
}

type repository struct {
	db         *pgxpool.Pool
	batchLimit int
}

// NewRepository builds a pgx backed Repository. A non-positive batchLimit
// falls back to DefaultBatchLimit.
func NewRepository(db *pgxpool.Pool, batchLimit int) Repository {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &repository{db: db, batchLimit: batchLimit}
}

// ListByProductIDs fetches transactions for the given product set. Batches
// run concurrently because they are read-only and commute; results merge
// only after every batch resolves and are sorted by creation time
// descending, since batch results arrive unordered.
func (r *repository) ListByProductIDs(ctx context.Context, productIDs []string, filter Filter) ([]Transaction, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	chunks := chunkIDs(productIDs, r.batchLimit)
	results := make([][]Transaction, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			batch, err := r.listBatch(ctx, chunk, filter)
			if err != nil {
				return err
			}
			results[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Transaction
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

func (r *repository) listBatch(ctx context.Context, productIDs []string, filter Filter) ([]Transaction, error) {
	query := `SELECT id, product_id, type, quantity, previous_quantity, new_quantity, unit_price, owner_id, created_at
		FROM inventory_transactions WHERE product_id = ANY($1)`
	args := []interface{}{productIDs}
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

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory: list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		var txType string
		if err := rows.Scan(&t.ID, &t.ProductID, &txType, &t.Quantity, &t.PreviousQuantity, &t.NewQuantity, &t.UnitPrice, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("inventory: scan transaction: %w", err)
		}
		tt, err := ParseTransactionType(txType)
		if err != nil {
			return nil, err
		}
		t.Type = tt
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory: list transactions: %w", err)
	}
	return transactions, nil
}

func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		return [][]string{ids}
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
