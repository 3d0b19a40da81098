package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("local cart storage unavailable")
	ErrLocalCorrupt       = errors.New("local cart payload is corrupt")
	ErrRemoteUnavailable  = errors.New("remote cart store unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrProductMissing     = errors.New("product no longer in catalog")
	ErrDuplicateItem      = errors.New("cart already holds a line item for this product")
)
