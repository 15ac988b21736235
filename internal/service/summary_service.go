package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetwise/internal/cache"
	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/metrics"
	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

var _ SummaryServiceHandler = (*SummaryService)(nil)

// SummaryService implements the Connect SummaryService
type SummaryService struct {
	store   storage.Store
	cache   *cache.SummaryCache
	metrics *metrics.Metrics
}

// NewSummaryService creates a new SummaryService. summaries and m may be
// nil to disable caching and metrics.
func NewSummaryService(store storage.Store, summaries *cache.SummaryCache, m *metrics.Metrics) *SummaryService {
	return &SummaryService{store: store, cache: summaries, metrics: m}
}

// ComputeSummary builds the cumulative, income and expense views for the
// requested cycle, optionally for one person.
func (s *SummaryService) ComputeSummary(ctx context.Context, req *connect.Request[ComputeSummaryRequest]) (*connect.Response[ComputeSummaryResponse], error) {
	slog.Info("ComputeSummary request received",
		"cycle", req.Msg.Cycle.String(),
		"person_id", req.Msg.PersonID,
	)

	if err := req.Msg.Cycle.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	calcReq := calculator.Request{Cycle: req.Msg.Cycle, PersonID: req.Msg.PersonID}
	summary, cached, err := s.cache.Get(calcReq, func() (*calculator.Summary, error) {
		// Shared with concurrent callers, so one caller's cancellation
		// must not fail the others.
		return s.build(context.WithoutCancel(ctx), calcReq)
	})
	if err != nil {
		return nil, toConnectError("ComputeSummary", err)
	}

	slog.Info("ComputeSummary successful",
		"cycle", summary.Cycle.String(),
		"cached", cached,
		"total_income", summary.TotalIncome.String(),
		"total_expense", summary.TotalExpense.String(),
	)
	return connect.NewResponse(&ComputeSummaryResponse{Summary: summary, Cached: cached}), nil
}

// build computes a summary from a fresh snapshot.
func (s *SummaryService) build(ctx context.Context, req calculator.Request) (*calculator.Summary, error) {
	b, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkPerson(models.NewIndex(b), req.PersonID); err != nil {
		return nil, err
	}

	summary, err := calculator.BuildSummary(b, req)
	if err != nil {
		return nil, err
	}

	for _, sk := range summary.Skipped {
		slog.Warn("Skipping transaction with invalid billing cycle",
			"transaction_id", sk.TransactionID,
			"name", sk.Name,
			"reason", sk.Reason,
		)
	}
	s.metrics.SummaryComputed(len(summary.Skipped))
	return summary, nil
}

// checkPerson rejects a person filter that names nobody. An empty filter
// means everyone.
func checkPerson(ix *models.Index, personID string) error {
	if personID == "" {
		return nil
	}
	if _, ok := ix.Person(personID); !ok {
		return fmt.Errorf("%w: %s", errPersonNotFound, personID)
	}
	return nil
}

// AmountFor returns what one transaction contributes over the requested
// cycle, for one person or for everyone.
func (s *SummaryService) AmountFor(ctx context.Context, req *connect.Request[AmountForRequest]) (*connect.Response[AmountForResponse], error) {
	slog.Info("AmountFor request received",
		"transaction_id", req.Msg.TransactionID,
		"cycle", req.Msg.Cycle.String(),
		"person_id", req.Msg.PersonID,
	)

	targetDays, err := req.Msg.Cycle.Days()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	b, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, toConnectError("AmountFor", err)
	}
	ix := models.NewIndex(b)
	tx, ok := ix.Transaction(req.Msg.TransactionID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound,
			fmt.Errorf("%w: transaction %s", storage.ErrNotFound, req.Msg.TransactionID))
	}
	if err := checkPerson(ix, req.Msg.PersonID); err != nil {
		return nil, toConnectError("AmountFor", err)
	}

	amount, err := calculator.AmountFor(&tx, targetDays, req.Msg.PersonID)
	if err != nil {
		return nil, txCycleError(err)
	}
	normalized, err := calculator.NormalizedAmount(&tx, targetDays)
	if err != nil {
		return nil, txCycleError(err)
	}

	return connect.NewResponse(&AmountForResponse{Amount: amount, Normalized: normalized}), nil
}

// txCycleError reports a stored transaction whose own billing cycle is
// invalid. The request is fine; the data is not.
func txCycleError(err error) error {
	if errors.Is(err, cycle.ErrInvalidCycle) {
		return connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("transaction billing cycle: %w", err))
	}
	return toConnectError("AmountFor", err)
}

// ComputeBalances reports who fronts transactions for whom over the
// requested cycle and the transfers that would settle up.
func (s *SummaryService) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	slog.Info("ComputeBalances request received", "cycle", req.Msg.Cycle.String())

	targetDays, err := req.Msg.Cycle.Days()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	b, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, toConnectError("ComputeBalances", err)
	}

	balances, transfers, skipped := calculator.Balances(b, targetDays)
	slog.Info("ComputeBalances successful",
		"people", len(balances),
		"transfers", len(transfers),
		"skipped", len(skipped),
	)
	return connect.NewResponse(&ComputeBalancesResponse{
		Balances:  balances,
		Transfers: transfers,
		Skipped:   skipped,
	}), nil
}
