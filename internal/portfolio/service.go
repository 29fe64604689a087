package portfolio

import (
	"context"
	"fmt"
	"time"

	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/storage"
)

// SyncPublisher emits async ledger sync notifications for logged transactions.
// A nil publisher disables the mirror.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, version int64) error
	Close() error
}

// Service orchestrates portfolio operations across SQLite and AMQP.
type Service struct {
	storage   *storage.SQLiteRepository
	publisher SyncPublisher
	logger    *log.Logger
}

func NewService(storage *storage.SQLiteRepository, publisher SyncPublisher, logger *log.Logger) *Service {
	return &Service{
		storage:   storage,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentPortfolio),
	}
}

// CreateAsset registers a new holding. A ticker that already exists reports
// core.ErrAssetExists and leaves the stored row untouched.
func (s *Service) CreateAsset(ctx context.Context, a core.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if err := s.storage.CreateAsset(ctx, a); err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	s.logger.InfoContext(ctx, "Asset created",
		log.NewFields().WithOperation(log.OpCreate).WithAsset(a.Ticker, string(a.Class), a.Shares.Units, a.CostBasis.Cents).ToSlice()...)
	return nil
}

func (s *Service) ListAssets(ctx context.Context) ([]core.Asset, error) {
	return s.storage.ListAssets(ctx)
}

func (s *Service) GetAsset(ctx context.Context, ticker string) (core.Asset, error) {
	return s.storage.GetAsset(ctx, core.NormalizeTicker(ticker))
}

// UpdateAsset overwrites the holding stored under originalTicker, including a
// rename; existing transactions follow the new ticker.
func (s *Service) UpdateAsset(ctx context.Context, originalTicker string, a core.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if err := s.storage.UpdateAsset(ctx, core.NormalizeTicker(originalTicker), a); err != nil {
		return fmt.Errorf("update asset: %w", err)
	}

	s.logger.InfoContext(ctx, "Asset updated",
		log.NewFields().WithOperation(log.OpUpdate).WithAsset(a.Ticker, string(a.Class), a.Shares.Units, a.CostBasis.Cents).ToSlice()...)
	return nil
}

func (s *Service) DeleteAsset(ctx context.Context, ticker string) error {
	ticker = core.NormalizeTicker(ticker)
	if err := s.storage.DeleteAsset(ctx, ticker); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}

	s.logger.InfoContext(ctx, "Asset deleted",
		log.NewFields().WithOperation(log.OpDelete).WithTicker(ticker).ToSlice()...)
	return nil
}

// LogTransaction saves a transaction locally and publishes a sync message.
// The transaction date is assigned here, not taken from the caller.
func (s *Service) LogTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	tx.Date = core.Date{Time: time.Now()}
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.AddTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	// The local write already succeeded; a publish failure only delays the
	// ledger mirror, which the worker recovers via the pending scan.
	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync message",
			log.NewFields().WithOperation(log.OpSync).WithError(err).ToSlice()...)
	}

	s.logger.InfoContext(ctx, "Transaction logged",
		log.NewFields().WithOperation(log.OpLog).WithTransaction(tx.Ticker, string(tx.Type), tx.Amount.Cents).ToSlice()...)
	return id, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx)
}

// GetSummary computes the dashboard totals from the current holdings.
func (s *Service) GetSummary(ctx context.Context) (core.Summary, error) {
	assets, err := s.storage.ListAssets(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load assets: %w", err)
	}
	return core.ComputeSummary(assets), nil
}

func (s *Service) GetAllocation(ctx context.Context) ([]core.ClassAllocation, error) {
	return s.storage.Allocation(ctx)
}

func (s *Service) GetInsights(ctx context.Context) (core.Insights, error) {
	return s.storage.Insights(ctx)
}

func (s *Service) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id, version)
}

// Close closes both storage and the publisher.
func (s *Service) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close portfolio service: %v", errs)
	}

	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
