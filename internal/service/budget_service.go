package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetwise/internal/events"
	"github.com/mmynk/budgetwise/internal/export"
	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

var _ BudgetServiceHandler = (*BudgetService)(nil)

// BudgetService implements the Connect BudgetService
type BudgetService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewBudgetService creates a new BudgetService. Every successful write is
// announced to publisher, which may be nil.
func NewBudgetService(store storage.Store, publisher events.Publisher) *BudgetService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &BudgetService{store: store, publisher: publisher}
}

// saveFuncs are the store operations for one entity kind.
type saveFuncs[T any] struct {
	kind   models.Kind
	create func(context.Context, *T) error
	update func(context.Context, *T) error
}

// save validates entity and creates or updates it according to mode.
// id points at the entity's ID field.
func save[T interface{ Validate() error }](ctx context.Context, s *BudgetService, fns saveFuncs[T], mode models.Mode, entity *T, id *string) error {
	if err := mode.Validate(); err != nil {
		return toConnectError("Save "+string(fns.kind), err)
	}
	if err := (*entity).Validate(); err != nil {
		return toConnectError("Save "+string(fns.kind), err)
	}

	*id = mode.ID
	op := events.OpCreate
	var err error
	if mode.IsEdit() {
		op = events.OpUpdate
		err = fns.update(ctx, entity)
	} else {
		err = fns.create(ctx, entity)
	}
	if err != nil {
		return toConnectError("Save "+string(fns.kind), err)
	}

	slog.Info("Entity saved", "kind", fns.kind, "id", *id, "op", op)
	s.publish(ctx, events.Change{Entity: fns.kind, Op: op, ID: *id})
	return nil
}

// publish announces c. Delivery failures are logged; the write has already
// been committed.
func (s *BudgetService) publish(ctx context.Context, c events.Change) {
	c.At = time.Now().UTC()
	if err := s.publisher.Publish(ctx, c); err != nil {
		slog.Warn("Failed to publish change", "entity", c.Entity, "op", c.Op, "id", c.ID, "error", err)
	}
}

// SavePerson creates or edits a person.
func (s *BudgetService) SavePerson(ctx context.Context, req *connect.Request[SavePersonRequest]) (*connect.Response[SavePersonResponse], error) {
	p := req.Msg.Person
	fns := saveFuncs[models.Person]{models.KindPerson, s.store.CreatePerson, s.store.UpdatePerson}
	if err := save(ctx, s, fns, req.Msg.Mode, &p, &p.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&SavePersonResponse{Person: p}), nil
}

// SavePaymentMethod creates or edits a payment method.
func (s *BudgetService) SavePaymentMethod(ctx context.Context, req *connect.Request[SavePaymentMethodRequest]) (*connect.Response[SavePaymentMethodResponse], error) {
	pm := req.Msg.PaymentMethod
	fns := saveFuncs[models.PaymentMethod]{models.KindPaymentMethod, s.store.CreatePaymentMethod, s.store.UpdatePaymentMethod}
	if err := save(ctx, s, fns, req.Msg.Mode, &pm, &pm.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&SavePaymentMethodResponse{PaymentMethod: pm}), nil
}

// SaveCategory creates or edits a category. An empty color is stored as
// the default.
func (s *BudgetService) SaveCategory(ctx context.Context, req *connect.Request[SaveCategoryRequest]) (*connect.Response[SaveCategoryResponse], error) {
	c := req.Msg.Category
	c.Color = c.ColorOrDefault()
	fns := saveFuncs[models.Category]{models.KindCategory, s.store.CreateCategory, s.store.UpdateCategory}
	if err := save(ctx, s, fns, req.Msg.Mode, &c, &c.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&SaveCategoryResponse{Category: c}), nil
}

// SaveTransaction creates or edits a transaction.
func (s *BudgetService) SaveTransaction(ctx context.Context, req *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error) {
	t := req.Msg.Transaction.Clone()
	fns := saveFuncs[models.Transaction]{models.KindTransaction, s.store.CreateTransaction, s.store.UpdateTransaction}
	if err := save(ctx, s, fns, req.Msg.Mode, &t, &t.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&SaveTransactionResponse{Transaction: t}), nil
}

// Delete removes one entity. References to it from other entities are
// left in place.
func (s *BudgetService) Delete(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("Delete request received", "kind", req.Msg.Kind, "id", req.Msg.ID)

	if !req.Msg.Kind.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown entity kind %q", req.Msg.Kind))
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id is required"))
	}

	if err := s.store.Delete(ctx, req.Msg.Kind, req.Msg.ID); err != nil {
		return nil, toConnectError("Delete", err)
	}

	s.publish(ctx, events.Change{Entity: req.Msg.Kind, Op: events.OpDelete, ID: req.Msg.ID})
	return connect.NewResponse(&DeleteResponse{}), nil
}

// Export returns the whole store as a document.
func (s *BudgetService) Export(ctx context.Context, _ *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error) {
	b, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, toConnectError("Export", err)
	}

	slog.Info("Export successful",
		"people", len(b.People),
		"payment_methods", len(b.PaymentMethods),
		"categories", len(b.Categories),
		"transactions", len(b.Transactions),
	)
	return connect.NewResponse(&ExportResponse{Document: export.FromBudget(b)}), nil
}

// Import replaces the whole store with the document.
func (s *BudgetService) Import(ctx context.Context, req *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error) {
	b, err := req.Msg.Document.Budget()
	if err != nil {
		return nil, toConnectError("Import", err)
	}
	if err := s.store.Replace(ctx, b); err != nil {
		return nil, toConnectError("Import", err)
	}

	resp := &ImportResponse{
		People:         len(b.People),
		PaymentMethods: len(b.PaymentMethods),
		Categories:     len(b.Categories),
		Transactions:   len(b.Transactions),
	}
	slog.Info("Import successful",
		"people", resp.People,
		"payment_methods", resp.PaymentMethods,
		"categories", resp.Categories,
		"transactions", resp.Transactions,
	)
	s.publish(ctx, events.Change{Op: events.OpReplace})
	return connect.NewResponse(resp), nil
}
