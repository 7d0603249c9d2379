package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundsledger/internal/models"
	"fundsledger/internal/repositories"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service is the ledger's call surface.
type Service interface {
	ListAccounts(ctx context.Context, conn Conn) ([]models.Account, error)
	FindAccount(ctx context.Context, conn Conn, id uint) (*models.Account, error)
	Transfer(ctx context.Context, conn Conn, req TransferRequest) Outcome
	RecentTransfers(ctx context.Context, conn Conn, accountID uint, limit int) ([]models.Transfer, error)
}

type service struct {
	cache   AccountCache
	config  LedgerConfig
	metrics MetricsCollector
	log     *zap.Logger
	tracer  trace.Tracer
}

// NewService creates a new ledger service
func NewService(cache AccountCache, config LedgerConfig, metrics MetricsCollector) Service {
	if cache == nil {
		cache = NoopCache{}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	// Simulated failures abort whatever hook is configured.
	config.PreCommit = ChainHooks(FailOnRequest, config.PreCommit)
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		cache:   cache,
		config:  config,
		metrics: metrics,
		log:     config.Logger.Named("ledger"),
		tracer:  otel.Tracer(tracerName),
	}
}

func (s *service) ListAccounts(ctx context.Context, conn Conn) ([]models.Account, error) {
	if accounts, found, err := s.cache.GetAccounts(ctx); err == nil && found {
		s.metrics.RecordCacheHit(operationListAccounts)
		return accounts, nil
	} else if err != nil {
		s.log.Warn("account cache read failed", zap.Error(err))
	}
	s.metrics.RecordCacheMiss(operationListAccounts)

	// The generation must be read before storage for the fill to be safe.
	generation, genErr := s.cache.Generation(ctx)

	accounts, err := conn.Accounts().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if genErr != nil {
		s.log.Warn("account cache generation unavailable, skipping fill", zap.Error(genErr))
	} else if err := s.cache.SetAccounts(ctx, generation, accounts); err != nil {
		s.log.Warn("account cache write failed", zap.Error(err))
	}
	return accounts, nil
}

func (s *service) FindAccount(ctx context.Context, conn Conn, id uint) (*models.Account, error) {
	if account, found, err := s.cache.GetAccount(ctx, id); err == nil && found {
		s.metrics.RecordCacheHit(operationFindAccount)
		return account, nil
	} else if err != nil {
		s.log.Warn("account cache read failed", zap.Uint("account_id", id), zap.Error(err))
	}
	s.metrics.RecordCacheMiss(operationFindAccount)

	generation, genErr := s.cache.Generation(ctx)

	account, err := conn.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if genErr != nil {
		s.log.Warn("account cache generation unavailable, skipping fill", zap.Uint("account_id", id), zap.Error(genErr))
	} else if err := s.cache.SetAccount(ctx, generation, account); err != nil {
		s.log.Warn("account cache write failed", zap.Uint("account_id", id), zap.Error(err))
	}
	return account, nil
}

func (s *service) RecentTransfers(ctx context.Context, conn Conn, accountID uint, limit int) ([]models.Transfer, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	transfers, err := conn.Accounts().ListTransfers(ctx, accountID, limit)
	if err != nil {
		return nil, translate(err)
	}
	return transfers, nil
}

func (s *service) Transfer(ctx context.Context, conn Conn, req TransferRequest) Outcome {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "ledger.Transfer", trace.WithAttributes(
		attribute.Int64("ledger.from_id", int64(req.FromID)),
		attribute.Int64("ledger.to_id", int64(req.ToID)),
		attribute.String("ledger.amount", req.Amount.String()),
	))
	defer span.End()

	outcome := s.transfer(ctx, conn, req)
	s.metrics.RecordTransfer(outcome.Status, outcome.Reason, outcome.MovedAmount, time.Since(start))

	fields := []zap.Field{
		zap.Uint("from_id", req.FromID),
		zap.Uint("to_id", req.ToID),
		zap.String("amount", req.Amount.String()),
	}
	if !outcome.Committed() {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, string(outcome.Reason))
		s.log.Warn("transfer aborted", append(fields,
			zap.String("reason", string(outcome.Reason)),
			zap.Bool("transient", outcome.Transient),
			zap.Error(outcome.Err))...)
		return outcome
	}

	span.SetAttributes(attribute.String("ledger.reference", outcome.Reference))
	s.log.Info("transfer committed", append(fields, zap.String("reference", outcome.Reference))...)

	// The committed balances are authoritative; stale snapshots only need to go.
	if err := s.cache.Invalidate(ctx, req.FromID, req.ToID); err != nil {
		s.log.Warn("account cache invalidation failed", zap.Error(err))
	}
	return outcome
}

func (s *service) transfer(ctx context.Context, conn Conn, req TransferRequest) Outcome {
	if err := req.Validate(); err != nil {
		return aborted(req, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	reference := uuid.NewString()
	err := conn.ExecuteInTransaction(ctx, func(tx repositories.AccountRepository) error {
		// Lock both rows lower id first so opposing transfers cannot deadlock.
		first, second := req.FromID, req.ToID
		if second < first {
			first, second = second, first
		}
		locked := make(map[uint]*models.Account, 2)
		for _, id := range []uint{first, second} {
			account, err := tx.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}

		if locked[req.FromID].Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: balance in %s is %s, amount is %s", ErrInsufficientFunds,
				locked[req.FromID].Name,
				locked[req.FromID].Balance.StringFixed(models.BalancePrecision),
				req.Amount.StringFixed(models.BalancePrecision))
		}

		if _, err := tx.ApplyDelta(ctx, req.FromID, req.Amount.Neg()); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, req.ToID, req.Amount); err != nil {
			return err
		}
		if err := tx.CreateTransfer(ctx, &models.Transfer{
			Reference:     reference,
			FromAccountID: req.FromID,
			ToAccountID:   req.ToID,
			Amount:        req.Amount,
		}); err != nil {
			return err
		}

		return s.config.PreCommit(ctx, req)
	})
	if err != nil {
		return aborted(req, translate(err))
	}
	return committed(req, reference)
}

// translate converts repository and driver errors into ledger errors so
// nothing from the storage layer leaks past the ledger unclassified.
func translate(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrSimulatedFailure),
		errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, repositories.ErrAccountNotFound):
		return fmt.Errorf("%w: %w", ErrAccountNotFound, err)
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
