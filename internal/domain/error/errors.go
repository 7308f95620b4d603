package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes for API responses
const (
	CodeBeneficiaryNotFound      = "BENEFICIARY_NOT_FOUND"
	CodeStoreNotFound            = "STORE_NOT_FOUND"
	CodeBeneficiaryInactive      = "BENEFICIARY_INACTIVE"
	CodeStoreInactive            = "STORE_INACTIVE"
	CodeProductInactive          = "PRODUCT_INACTIVE"
	CodeInsufficientBalance      = "INSUFFICIENT_BALANCE"
	CodeTransactionLocked        = "TRANSACTION_LOCKED"
	CodeAllocationLimitExceeded  = "ALLOCATION_LIMIT_EXCEEDED"
	CodeBalanceLimitExceeded     = "BALANCE_LIMIT_EXCEEDED"
	CodeDuplicateNationalID      = "DUPLICATE_NATIONAL_ID"
	CodeDuplicateUsername        = "DUPLICATE_USERNAME"
	CodeNotFound                 = "NOT_FOUND"
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeForbidden                = "FORBIDDEN"
	CodeStoreUnavailable         = "STORE_UNAVAILABLE"
	CodeInternalServer           = "INTERNAL_SERVER_ERROR"
)

// Base error types
var (
	// ErrBeneficiaryNotFound is returned when a beneficiary QR/ID lookup misses
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")

	// ErrStoreNotFound is returned when a store QR/ID lookup misses
	ErrStoreNotFound = errors.New("store not found")

	// ErrBeneficiaryInactive is returned when the beneficiary account is not active
	ErrBeneficiaryInactive = errors.New("beneficiary account is not active")

	// ErrStoreInactive is returned when the store is not active
	ErrStoreInactive = errors.New("store is not active")

	// ErrProductInactive is returned when the referenced product has been retired
	ErrProductInactive = errors.New("product is not active")

	// ErrInsufficientBalance is returned when a debit would take the balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTransactionLocked is returned when the beneficiary lock could not be acquired
	ErrTransactionLocked = errors.New("another transaction is in progress for this beneficiary")

	// ErrAllocationLimitExceeded is returned when a single allocation exceeds the configured maximum
	ErrAllocationLimitExceeded = errors.New("allocation amount exceeds the configured limit")

	// ErrBalanceLimitExceeded is returned when an allocation would push the balance over the configured maximum
	ErrBalanceLimitExceeded = errors.New("resulting balance would exceed the configured limit")

	// ErrDuplicateNationalID is returned when registering a national ID that already exists
	ErrDuplicateNationalID = errors.New("national ID is already registered")

	// ErrDuplicateUsername is returned when creating a user whose username is taken
	ErrDuplicateUsername = errors.New("username is already taken")

	// ErrProductNotFound is returned when the requested product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAssociationNotFound is returned when the requested association doesn't exist
	ErrAssociationNotFound = errors.New("association not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAllocationNotFound is returned when the requested allocation doesn't exist
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrConfigNotFound is returned when the requested config key doesn't exist
	ErrConfigNotFound = errors.New("config key not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidNationalID is returned when the national-ID string is malformed
	ErrInvalidNationalID = errors.New("invalid national ID format")

	// ErrInvalidPhone is returned when a phone number is malformed
	ErrInvalidPhone = errors.New("invalid phone number format")

	// ErrInvalidName is returned when a required name field is empty
	ErrInvalidName = errors.New("name cannot be empty")

	// ErrInvalidUsername is returned when a username is shorter than three characters
	ErrInvalidUsername = errors.New("username must be at least 3 characters")

	// ErrInvalidPassword is returned when a password or its hash is empty
	ErrInvalidPassword = errors.New("password cannot be empty")

	// ErrInvalidRole is returned when a role is not one of the allowed values
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidCategory is returned when a product category is not one of the allowed values
	ErrInvalidCategory = errors.New("invalid product category")

	// ErrInvalidStatus is returned when a lifecycle status is not one of the allowed values
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidConfigKey is returned when a config key is empty
	ErrInvalidConfigKey = errors.New("config key cannot be empty")

	// ErrInvalidCredentials is returned when login credentials don't match
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreUnavailable wraps infrastructure faults from the key-value store;
	// never retried inside the engines
	ErrStoreUnavailable = errors.New("key-value store unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns the stable machine-readable code for a known error
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBeneficiaryNotFound):
		return CodeBeneficiaryNotFound
	case errors.Is(err, ErrStoreNotFound):
		return CodeStoreNotFound
	case errors.Is(err, ErrBeneficiaryInactive):
		return CodeBeneficiaryInactive
	case errors.Is(err, ErrStoreInactive):
		return CodeStoreInactive
	case errors.Is(err, ErrProductInactive):
		return CodeProductInactive
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrTransactionLocked):
		return CodeTransactionLocked
	case errors.Is(err, ErrAllocationLimitExceeded):
		return CodeAllocationLimitExceeded
	case errors.Is(err, ErrBalanceLimitExceeded):
		return CodeBalanceLimitExceeded
	case errors.Is(err, ErrDuplicateNationalID):
		return CodeDuplicateNationalID
	case errors.Is(err, ErrDuplicateUsername):
		return CodeDuplicateUsername
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidNationalID),
		errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidConfigKey),
		errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a known error to the HTTP status the API edge should use
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBeneficiaryNotFound),
		errors.Is(err, ErrStoreNotFound),
		IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrBeneficiaryInactive),
		errors.Is(err, ErrStoreInactive):
		return http.StatusForbidden
	case errors.Is(err, ErrTransactionLocked),
		errors.Is(err, ErrDuplicateNationalID),
		errors.Is(err, ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrProductInactive),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrAllocationLimitExceeded),
		errors.Is(err, ErrBalanceLimitExceeded),
		ErrorCode(err) == CodeInvalidRequest:
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// InsufficientBalanceError carries the balance state that made a debit impossible
type InsufficientBalanceError struct {
	CurrentBalance int64
	Required       int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.CurrentBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Details returns the structured payload for API responses
func (e *InsufficientBalanceError) Details() map[string]any {
	return map[string]any{
		"current_balance": e.CurrentBalance,
		"required":        e.Required,
	}
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"current_balance": e.CurrentBalance,
		"required":        e.Required,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(currentBalance, required int64) error {
	return &InsufficientBalanceError{
		CurrentBalance: currentBalance,
		Required:       required,
	}
}

// AllocationLimitError carries the configured maximum a single allocation exceeded
type AllocationLimitError struct {
	MaxLimit  int64
	Requested int64
}

// Error implements the error interface
func (e *AllocationLimitError) Error() string {
	return fmt.Sprintf("allocation of %d exceeds the single-allocation limit of %d", e.Requested, e.MaxLimit)
}

// Is checks if the target error is an ErrAllocationLimitExceeded
func (e *AllocationLimitError) Is(target error) bool {
	return target == ErrAllocationLimitExceeded
}

// Details returns the structured payload for API responses
func (e *AllocationLimitError) Details() map[string]any {
	return map[string]any{
		"max_limit": e.MaxLimit,
		"requested": e.Requested,
	}
}

// LogFields returns a map of fields for structured logging
func (e *AllocationLimitError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "allocation_limit_exceeded",
		"max_limit":  e.MaxLimit,
		"requested":  e.Requested,
		"error_code": CodeAllocationLimitExceeded,
	}
}

// NewAllocationLimitError creates a new detailed allocation limit error
func NewAllocationLimitError(maxLimit, requested int64) error {
	return &AllocationLimitError{MaxLimit: maxLimit, Requested: requested}
}

// BalanceLimitError carries the state that made an allocation overflow the balance cap
type BalanceLimitError struct {
	CurrentBalance int64
	Requested      int64
	MaxLimit       int64
}

// Error implements the error interface
func (e *BalanceLimitError) Error() string {
	return fmt.Sprintf("allocating %d onto balance %d would exceed the balance limit of %d",
		e.Requested, e.CurrentBalance, e.MaxLimit)
}

// Is checks if the target error is an ErrBalanceLimitExceeded
func (e *BalanceLimitError) Is(target error) bool {
	return target == ErrBalanceLimitExceeded
}

// Details returns the structured payload for API responses
func (e *BalanceLimitError) Details() map[string]any {
	return map[string]any{
		"current_balance": e.CurrentBalance,
		"requested":       e.Requested,
		"max_limit":       e.MaxLimit,
	}
}

// LogFields returns a map of fields for structured logging
func (e *BalanceLimitError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "balance_limit_exceeded",
		"current_balance": e.CurrentBalance,
		"requested":       e.Requested,
		"max_limit":       e.MaxLimit,
		"error_code":      CodeBalanceLimitExceeded,
	}
}

// NewBalanceLimitError creates a new detailed balance limit error
func NewBalanceLimitError(currentBalance, requested, maxLimit int64) error {
	return &BalanceLimitError{CurrentBalance: currentBalance, Requested: requested, MaxLimit: maxLimit}
}

// Detailer is implemented by errors carrying a structured detail payload
type Detailer interface {
	Details() map[string]any
}

// ErrorDetails extracts the structured detail payload from an error, if any
func ErrorDetails(err error) map[string]any {
	var d Detailer
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsTransactionLockedError checks if the error is a lock-acquisition conflict
func IsTransactionLockedError(err error) bool {
	return errors.Is(err, ErrTransactionLocked)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrBeneficiaryNotFound) ||
		errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAssociationNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAllocationNotFound) ||
		errors.Is(err, ErrConfigNotFound)
}

// IsInfrastructureError checks if the error came from the key-value store itself
func IsInfrastructureError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
