package portfolio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []int64
	err       error
}

func (p *fakePublisher) PublishTransactionSync(_ context.Context, id, _ int64) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, id)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func newTestService(t *testing.T, pub SyncPublisher) *Service {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewService(repo, pub, log.New(log.DefaultConfig()))
}

func validAsset(ticker string) core.Asset {
	return core.Asset{
		Ticker:       ticker,
		PurchaseDate: core.NewDate(2024, 1, 1),
		Shares:       core.Quantity{Units: 100000},
		CostBasis:    core.Money{Cents: 150000},
		Class:        core.Equities,
	}
}

func TestCreateAssetValidatesBeforeStorage(t *testing.T) {
	svc := newTestService(t, nil)

	err := svc.CreateAsset(context.Background(), core.Asset{Ticker: ""})
	assert.ErrorIs(t, err, core.ErrEmptyTicker)

	assets, err := svc.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestCreateAssetDuplicate(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))
	err := svc.CreateAsset(ctx, validAsset("AAPL"))
	assert.ErrorIs(t, err, core.ErrAssetExists)
}

func TestLogTransactionPublishesSyncMessage(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(t, pub)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))

	id, err := svc.LogTransaction(ctx, core.Transaction{
		Ticker: "AAPL",
		Type:   core.Buy,
		Amount: core.Money{Cents: 5000},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{id}, pub.published)
}

func TestLogTransactionSurvivesPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(t, pub)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))

	// The local write wins; the mirror catches up later.
	id, err := svc.LogTransaction(ctx, core.Transaction{
		Ticker: "AAPL",
		Type:   core.Sell,
		Amount: core.Money{Cents: 5000},
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestLogTransactionWithoutPublisher(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))
	_, err := svc.LogTransaction(ctx, core.Transaction{
		Ticker: "AAPL",
		Type:   core.Dividend,
		Amount: core.Money{Cents: 100},
	})
	assert.NoError(t, err)
}

func TestLogTransactionAssignsDate(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))
	_, err := svc.LogTransaction(ctx, core.Transaction{
		Ticker: "AAPL",
		Type:   core.Buy,
		Amount: core.Money{Cents: 5000},
	})
	require.NoError(t, err)

	// The date comes from the service clock, not the caller.
	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), txs[0].Date.Format("2006-01-02"))
}

func TestGetSummaryEmptyPortfolio(t *testing.T) {
	svc := newTestService(t, nil)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Summary{}, summary)
}

func TestGetSummaryTotals(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a := validAsset("AAPL") // 10 shares at $1500 cost basis
	require.NoError(t, svc.CreateAsset(ctx, a))

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AssetCount)
	assert.Equal(t, int64(150000), summary.TotalCostBasis.Cents)
	assert.Equal(t, int64(1650000), summary.TotalMarketValue.Cents)
	assert.Equal(t, int64(1500000), summary.TotalGainLoss.Cents)
}

func TestUpdateAssetRename(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.CreateAsset(ctx, validAsset("AAPL")))
	renamed := validAsset("AAPLX")
	require.NoError(t, svc.UpdateAsset(ctx, "aapl", renamed))

	got, err := svc.GetAsset(ctx, "AAPLX")
	require.NoError(t, err)
	assert.Equal(t, "AAPLX", got.Ticker)

	_, err = svc.GetAsset(ctx, "AAPL")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestDeleteAssetMissing(t *testing.T) {
	svc := newTestService(t, nil)
	err := svc.DeleteAsset(context.Background(), "NOPE")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}
