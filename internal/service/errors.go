package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/export"
	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

// errPersonNotFound is returned for a person filter that names no person.
var errPersonNotFound = errors.New("person not found")

// toConnectError maps domain and storage errors onto Connect codes.
// Anything unrecognized is logged and reported as internal.
func toConnectError(op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, errPersonNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, storage.ErrConflict):
		code = connect.CodeAlreadyExists
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidMode),
		errors.Is(err, cycle.ErrInvalidCycle),
		errors.Is(err, export.ErrMalformed):
		code = connect.CodeInvalidArgument
	default:
		slog.Error(op+" failed", "error", err)
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}
