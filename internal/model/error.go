package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidParameter     = "INVALID_PARAMETER"
	ErrCodeMissingComment       = "MISSING_COMMENT"
	ErrCodeInvalidRating        = "INVALID_RATING"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeMissingPayment       = "MISSING_PAYMENT_METHOD"
	ErrCodeInvalidPayment       = "INVALID_PAYMENT_METHOD"
	ErrCodeIncompleteCheckout   = "INCOMPLETE_CHECKOUT"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeOutOfStock           = "OUT_OF_STOCK"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeInvalidCheckoutStep  = "INVALID_CHECKOUT_STEP"
	ErrCodeInvalidShippingField = "INVALID_SHIPPING_ADDRESS"
)

// ErrorKind classifies a DomainError so the transport layer can map it to a status.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindAuth
	KindForbidden
	KindStock
)

// DomainError is an expected business failure. It is returned, never panicked.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given code.
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// AsDomainError unwraps err into a DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}

// Common domain errors
var (
	ErrMissingComment     = NewValidationError(ErrCodeMissingComment, "Please enter comment")
	ErrInvalidRating      = NewValidationError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrInvalidQuantity    = NewValidationError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrMissingPayment     = NewValidationError(ErrCodeMissingPayment, "Payment method is required")
	ErrInvalidPayment     = NewValidationError(ErrCodeInvalidPayment, "Payment method must be PayPal, Stripe or Cash")
	ErrEmptyCart          = NewValidationError(ErrCodeEmptyCart, "Cart is empty")
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound      = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrOutOfStock         = NewDomainError(KindStock, ErrCodeOutOfStock, "Sorry. Product is out of stock")
	ErrUnauthorised       = NewDomainError(KindAuth, ErrCodeUnauthorised, "signin required")
	ErrInvalidCredentials = NewDomainError(KindAuth, ErrCodeInvalidCredentials, "Invalid email or password")
	ErrForbidden          = NewDomainError(KindForbidden, ErrCodeForbidden, "admin signin required")
)
