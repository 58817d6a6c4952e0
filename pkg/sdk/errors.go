package shopdex

import "github.com/kailas-cloud/shopdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrProductNotFound = domain.ErrProductNotFound
	ErrValidation      = domain.ErrValidation
	ErrInvalidPageSize = domain.ErrInvalidPageSize
	ErrPageOutOfRange  = domain.ErrPageOutOfRange
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrBatchTooLarge   = domain.ErrBatchTooLarge
)
