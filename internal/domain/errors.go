package domain

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("size variant not found")
	ErrDiscountNotFound = errors.New("discount not found")

	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrDiscountExpired        = errors.New("discount expired")
	ErrDiscountExhausted      = errors.New("discount usage limit reached")
	ErrDiscountMismatch       = errors.New("grand total does not match discount")
	ErrDiscountAlreadyApplied = errors.New("discount already applied to order")

	ErrInvalidStatus = errors.New("invalid order status")
)

// ValidationError marks malformed or missing caller input. Never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(msg string) error { return &ValidationError{Msg: msg} }

// ErrorKind classifies an error for callers that need to decide between
// rejecting, reporting a conflict, or retrying the whole transaction.
type ErrorKind int

const (
	// KindTransient covers infrastructure failures; the transaction left no
	// partial effect and may be retried as a whole.
	KindTransient ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func Kind(err error) ErrorKind {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, ErrInvalidStatus):
		return KindValidation
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrDiscountNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrDiscountExpired),
		errors.Is(err, ErrDiscountExhausted),
		errors.Is(err, ErrDiscountMismatch),
		errors.Is(err, ErrDiscountAlreadyApplied):
		return KindConflict
	default:
		return KindTransient
	}
}
