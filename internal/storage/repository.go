// Package storage owns the SQLite persistence layer: a single pooled
// connection for the process lifetime plus the parameterized statements
// over the assets and transactions tables.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"folio/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// PendingSyncTransaction carries the minimal data the sync queue needs.
type PendingSyncTransaction struct {
	ID        int64
	CreatedAt time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Cascades on the transactions table rely on the foreign_keys pragma.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database connection is usable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateAsset inserts a new asset. A duplicate ticker is reported as
// core.ErrAssetExists and leaves the existing row unchanged.
func (r *SQLiteRepository) CreateAsset(ctx context.Context, a core.Asset) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (ticker, purchase_date, shares_units, cost_basis_cents, asset_class)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO NOTHING`,
		a.Ticker, a.PurchaseDate.Format(dateLayout), a.Shares.Units, a.CostBasis.Cents, string(a.Class))
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create asset rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrAssetExists
	}

	slog.InfoContext(ctx, "Asset saved",
		"ticker", a.Ticker,
		"asset_class", string(a.Class),
		"shares_units", a.Shares.Units,
		"cost_basis_cents", a.CostBasis.Cents)
	return nil
}

// ListAssets returns the full asset table ordered by ticker ascending.
func (r *SQLiteRepository) ListAssets(ctx context.Context) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ticker, purchase_date, shares_units, cost_basis_cents, asset_class
		FROM assets
		ORDER BY ticker ASC`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []core.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets rows: %w", err)
	}
	return assets, nil
}

// GetAsset returns a single asset by ticker, or core.ErrAssetNotFound.
func (r *SQLiteRepository) GetAsset(ctx context.Context, ticker string) (core.Asset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT ticker, purchase_date, shares_units, cost_basis_cents, asset_class
		FROM assets
		WHERE ticker = ?`, ticker)
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return core.Asset{}, core.ErrAssetNotFound
	}
	if err != nil {
		return core.Asset{}, fmt.Errorf("get asset %s: %w", ticker, err)
	}
	return a, nil
}

// UpdateAsset overwrites every column of the asset identified by
// originalTicker, including a ticker rename. Transactions follow the
// rename through the ON UPDATE CASCADE reference.
func (r *SQLiteRepository) UpdateAsset(ctx context.Context, originalTicker string, a core.Asset) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assets
		SET ticker = ?, purchase_date = ?, shares_units = ?, cost_basis_cents = ?, asset_class = ?
		WHERE ticker = ?`,
		a.Ticker, a.PurchaseDate.Format(dateLayout), a.Shares.Units, a.CostBasis.Cents, string(a.Class),
		originalTicker)
	if err != nil {
		return fmt.Errorf("update asset %s: %w", originalTicker, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update asset rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrAssetNotFound
	}

	slog.InfoContext(ctx, "Asset updated", "ticker", originalTicker, "new_ticker", a.Ticker)
	return nil
}

// DeleteAsset removes an asset; its transactions cascade at the
// database level.
func (r *SQLiteRepository) DeleteAsset(ctx context.Context, ticker string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", ticker, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrAssetNotFound
	}

	slog.InfoContext(ctx, "Asset deleted", "ticker", ticker)
	return nil
}

// AddTransaction appends a transaction row and returns its id. The
// ticker reference is not validated here; the presentation layer
// restricts the form to existing tickers.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (ticker, transaction_date, transaction_type, amount_cents, notes)
		VALUES (?, ?, ?, ?, ?)`,
		tx.Ticker, tx.Date.Format(dateLayout), string(tx.Type), tx.Amount.Cents, tx.Notes)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"ticker", tx.Ticker,
		"transaction_type", string(tx.Type),
		"amount_cents", tx.Amount.Cents)
	return id, nil
}

// ListTransactions returns the full history ordered by date descending,
// newest insert first within a day.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticker, transaction_date, transaction_type, amount_cents, notes
		FROM transactions
		ORDER BY transaction_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return txs, nil
}

// GetTransaction returns a single transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, ticker, transaction_date, transaction_type, amount_cents, notes
		FROM transactions
		WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

// Allocation returns cost basis summed per asset class, ordered by class.
func (r *SQLiteRepository) Allocation(ctx context.Context) ([]core.ClassAllocation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT asset_class, SUM(cost_basis_cents)
		FROM assets
		GROUP BY asset_class
		ORDER BY asset_class ASC`)
	if err != nil {
		return nil, fmt.Errorf("asset allocation: %w", err)
	}
	defer rows.Close()

	var alloc []core.ClassAllocation
	for rows.Next() {
		var class string
		var cents int64
		if err := rows.Scan(&class, &cents); err != nil {
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		alloc = append(alloc, core.ClassAllocation{
			Class:     core.AssetClass(class),
			CostBasis: core.Money{Cents: cents},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("allocation rows: %w", err)
	}
	return alloc, nil
}

// Insights computes the aggregate-function metrics in the database. An
// empty asset table yields the zero value, not an error.
func (r *SQLiteRepository) Insights(ctx context.Context) (core.Insights, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(cost_basis_cents), AVG(cost_basis_cents),
		       MIN(shares_units), MAX(shares_units)
		FROM assets`)

	var count int
	var sum, minShares, maxShares sql.NullInt64
	var avg sql.NullFloat64
	if err := row.Scan(&count, &sum, &avg, &minShares, &maxShares); err != nil {
		return core.Insights{}, fmt.Errorf("insights: %w", err)
	}
	if count == 0 {
		return core.Insights{}, nil
	}
	return core.Insights{
		AssetCount:     count,
		TotalCostBasis: core.Money{Cents: sum.Int64},
		AvgCostBasis:   core.Money{Cents: int64(math.Round(avg.Float64))},
		MinShares:      core.Quantity{Units: minShares.Int64},
		MaxShares:      core.Quantity{Units: maxShares.Int64},
	}, nil
}

// ListPendingSyncTransactions returns transactions awaiting the ledger
// mirror, oldest first.
func (r *SQLiteRepository) ListPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at
		FROM transactions
		WHERE sync_status = 'pending'
		ORDER BY id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync row: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending sync rows: %w", err)
	}
	return pending, nil
}

// MarkTransactionSynced marks a transaction as mirrored to the ledger.
func (r *SQLiteRepository) MarkTransactionSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkTransactionSyncError records a mirror failure for later retry.
func (r *SQLiteRepository) MarkTransactionSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (core.Asset, error) {
	var (
		a          core.Asset
		dateStr    string
		units      int64
		cents      int64
		classLabel string
	)
	if err := row.Scan(&a.Ticker, &dateStr, &units, &cents, &classLabel); err != nil {
		if err == sql.ErrNoRows {
			return core.Asset{}, err
		}
		return core.Asset{}, fmt.Errorf("scan asset row: %w", err)
	}
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return core.Asset{}, fmt.Errorf("parse purchase date %q: %w", dateStr, err)
	}
	a.PurchaseDate = core.Date{Time: d}
	a.Shares = core.Quantity{Units: units}
	a.CostBasis = core.Money{Cents: cents}
	a.Class = core.AssetClass(classLabel)
	return a, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx        core.Transaction
		dateStr   string
		typeLabel string
		cents     int64
	)
	if err := row.Scan(&tx.ID, &tx.Ticker, &dateStr, &typeLabel, &cents, &tx.Notes); err != nil {
		if err == sql.ErrNoRows {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction row: %w", err)
	}
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", dateStr, err)
	}
	tx.Date = core.Date{Time: d}
	tx.Type = core.TransactionType(typeLabel)
	tx.Amount = core.Money{Cents: cents}
	return tx, nil
}
