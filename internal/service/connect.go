package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	BudgetServiceName  = "budgetwise.v1.BudgetService"
	SummaryServiceName = "budgetwise.v1.SummaryService"
)

const (
	SavePersonProcedure        = "/" + BudgetServiceName + "/SavePerson"
	SavePaymentMethodProcedure = "/" + BudgetServiceName + "/SavePaymentMethod"
	SaveCategoryProcedure      = "/" + BudgetServiceName + "/SaveCategory"
	SaveTransactionProcedure   = "/" + BudgetServiceName + "/SaveTransaction"
	DeleteProcedure            = "/" + BudgetServiceName + "/Delete"
	ExportProcedure            = "/" + BudgetServiceName + "/Export"
	ImportProcedure            = "/" + BudgetServiceName + "/Import"

	ComputeSummaryProcedure  = "/" + SummaryServiceName + "/ComputeSummary"
	AmountForProcedure       = "/" + SummaryServiceName + "/AmountFor"
	ComputeBalancesProcedure = "/" + SummaryServiceName + "/ComputeBalances"
)

// BudgetServiceHandler edits the entity store.
type BudgetServiceHandler interface {
	SavePerson(context.Context, *connect.Request[SavePersonRequest]) (*connect.Response[SavePersonResponse], error)
	SavePaymentMethod(context.Context, *connect.Request[SavePaymentMethodRequest]) (*connect.Response[SavePaymentMethodResponse], error)
	SaveCategory(context.Context, *connect.Request[SaveCategoryRequest]) (*connect.Response[SaveCategoryResponse], error)
	SaveTransaction(context.Context, *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error)
	Delete(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error)
	Export(context.Context, *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error)
	Import(context.Context, *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error)
}

// SummaryServiceHandler computes summaries from the entity store.
type SummaryServiceHandler interface {
	ComputeSummary(context.Context, *connect.Request[ComputeSummaryRequest]) (*connect.Response[ComputeSummaryResponse], error)
	AmountFor(context.Context, *connect.Request[AmountForRequest]) (*connect.Response[AmountForResponse], error)
	ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// NewBudgetServiceHandler builds an HTTP handler for svc. It returns the
// path on which to mount the handler and the handler itself.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SavePersonProcedure, connect.NewUnaryHandler(SavePersonProcedure, svc.SavePerson, opts...))
	mux.Handle(SavePaymentMethodProcedure, connect.NewUnaryHandler(SavePaymentMethodProcedure, svc.SavePaymentMethod, opts...))
	mux.Handle(SaveCategoryProcedure, connect.NewUnaryHandler(SaveCategoryProcedure, svc.SaveCategory, opts...))
	mux.Handle(SaveTransactionProcedure, connect.NewUnaryHandler(SaveTransactionProcedure, svc.SaveTransaction, opts...))
	mux.Handle(DeleteProcedure, connect.NewUnaryHandler(DeleteProcedure, svc.Delete, opts...))
	mux.Handle(ExportProcedure, connect.NewUnaryHandler(ExportProcedure, svc.Export, opts...))
	mux.Handle(ImportProcedure, connect.NewUnaryHandler(ImportProcedure, svc.Import, opts...))
	return "/" + BudgetServiceName + "/", mux
}

// NewSummaryServiceHandler builds an HTTP handler for svc. It returns the
// path on which to mount the handler and the handler itself.
func NewSummaryServiceHandler(svc SummaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ComputeSummaryProcedure, connect.NewUnaryHandler(ComputeSummaryProcedure, svc.ComputeSummary, opts...))
	mux.Handle(AmountForProcedure, connect.NewUnaryHandler(AmountForProcedure, svc.AmountFor, opts...))
	mux.Handle(ComputeBalancesProcedure, connect.NewUnaryHandler(ComputeBalancesProcedure, svc.ComputeBalances, opts...))
	return "/" + SummaryServiceName + "/", mux
}

// BudgetServiceClient calls a remote BudgetService.
type BudgetServiceClient struct {
	savePerson        *connect.Client[SavePersonRequest, SavePersonResponse]
	savePaymentMethod *connect.Client[SavePaymentMethodRequest, SavePaymentMethodResponse]
	saveCategory      *connect.Client[SaveCategoryRequest, SaveCategoryResponse]
	saveTransaction   *connect.Client[SaveTransactionRequest, SaveTransactionResponse]
	delete            *connect.Client[DeleteRequest, DeleteResponse]
	export            *connect.Client[ExportRequest, ExportResponse]
	importDocument    *connect.Client[ImportRequest, ImportResponse]
}

// NewBudgetServiceClient returns a client for the service at baseURL,
// for example http://localhost:8080.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	opts = clientOptions(opts)
	return &BudgetServiceClient{
		savePerson:        connect.NewClient[SavePersonRequest, SavePersonResponse](httpClient, baseURL+SavePersonProcedure, opts...),
		savePaymentMethod: connect.NewClient[SavePaymentMethodRequest, SavePaymentMethodResponse](httpClient, baseURL+SavePaymentMethodProcedure, opts...),
		saveCategory:      connect.NewClient[SaveCategoryRequest, SaveCategoryResponse](httpClient, baseURL+SaveCategoryProcedure, opts...),
		saveTransaction:   connect.NewClient[SaveTransactionRequest, SaveTransactionResponse](httpClient, baseURL+SaveTransactionProcedure, opts...),
		delete:            connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+DeleteProcedure, opts...),
		export:            connect.NewClient[ExportRequest, ExportResponse](httpClient, baseURL+ExportProcedure, opts...),
		importDocument:    connect.NewClient[ImportRequest, ImportResponse](httpClient, baseURL+ImportProcedure, opts...),
	}
}

func (c *BudgetServiceClient) SavePerson(ctx context.Context, req *connect.Request[SavePersonRequest]) (*connect.Response[SavePersonResponse], error) {
	return c.savePerson.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) SavePaymentMethod(ctx context.Context, req *connect.Request[SavePaymentMethodRequest]) (*connect.Response[SavePaymentMethodResponse], error) {
	return c.savePaymentMethod.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) SaveCategory(ctx context.Context, req *connect.Request[SaveCategoryRequest]) (*connect.Response[SaveCategoryResponse], error) {
	return c.saveCategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) SaveTransaction(ctx context.Context, req *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error) {
	return c.saveTransaction.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) Delete(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) Export(ctx context.Context, req *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error) {
	return c.export.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) Import(ctx context.Context, req *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error) {
	return c.importDocument.CallUnary(ctx, req)
}

// SummaryServiceClient calls a remote SummaryService.
type SummaryServiceClient struct {
	computeSummary  *connect.Client[ComputeSummaryRequest, ComputeSummaryResponse]
	amountFor       *connect.Client[AmountForRequest, AmountForResponse]
	computeBalances *connect.Client[ComputeBalancesRequest, ComputeBalancesResponse]
}

// NewSummaryServiceClient returns a client for the service at baseURL.
func NewSummaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SummaryServiceClient {
	opts = clientOptions(opts)
	return &SummaryServiceClient{
		computeSummary:  connect.NewClient[ComputeSummaryRequest, ComputeSummaryResponse](httpClient, baseURL+ComputeSummaryProcedure, opts...),
		amountFor:       connect.NewClient[AmountForRequest, AmountForResponse](httpClient, baseURL+AmountForProcedure, opts...),
		computeBalances: connect.NewClient[ComputeBalancesRequest, ComputeBalancesResponse](httpClient, baseURL+ComputeBalancesProcedure, opts...),
	}
}

func (c *SummaryServiceClient) ComputeSummary(ctx context.Context, req *connect.Request[ComputeSummaryRequest]) (*connect.Response[ComputeSummaryResponse], error) {
	return c.computeSummary.CallUnary(ctx, req)
}

func (c *SummaryServiceClient) AmountFor(ctx context.Context, req *connect.Request[AmountForRequest]) (*connect.Response[AmountForResponse], error) {
	return c.amountFor.CallUnary(ctx, req)
}

func (c *SummaryServiceClient) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	return c.computeBalances.CallUnary(ctx, req)
}
