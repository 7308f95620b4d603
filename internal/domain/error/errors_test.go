package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"BeneficiaryNotFound", ErrBeneficiaryNotFound, CodeBeneficiaryNotFound},
		{"StoreNotFound", ErrStoreNotFound, CodeStoreNotFound},
		{"BeneficiaryInactive", ErrBeneficiaryInactive, CodeBeneficiaryInactive},
		{"StoreInactive", ErrStoreInactive, CodeStoreInactive},
		{"InsufficientBalance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"TransactionLocked", ErrTransactionLocked, CodeTransactionLocked},
		{"AllocationLimit", ErrAllocationLimitExceeded, CodeAllocationLimitExceeded},
		{"BalanceLimit", ErrBalanceLimitExceeded, CodeBalanceLimitExceeded},
		{"DuplicateNationalID", ErrDuplicateNationalID, CodeDuplicateNationalID},
		{"DuplicateUsername", ErrDuplicateUsername, CodeDuplicateUsername},
		{"ProductNotFound", ErrProductNotFound, CodeNotFound},
		{"ConfigNotFound", ErrConfigNotFound, CodeNotFound},
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidRequest},
		{"InvalidNationalID", ErrInvalidNationalID, CodeInvalidRequest},
		{"InvalidCredentials", ErrInvalidCredentials, CodeInvalidCredentials},
		{"StoreUnavailable", ErrStoreUnavailable, CodeStoreUnavailable},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInsufficientBalance), CodeInsufficientBalance},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %s, want %s", tc.err, code, tc.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"BeneficiaryNotFound", ErrBeneficiaryNotFound, http.StatusNotFound},
		{"TransactionNotFound", ErrTransactionNotFound, http.StatusNotFound},
		{"BeneficiaryInactive", ErrBeneficiaryInactive, http.StatusForbidden},
		{"StoreInactive", ErrStoreInactive, http.StatusForbidden},
		{"TransactionLocked", ErrTransactionLocked, http.StatusConflict},
		{"DuplicateNationalID", ErrDuplicateNationalID, http.StatusConflict},
		{"DuplicateUsername", ErrDuplicateUsername, http.StatusConflict},
		{"InvalidCredentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"InsufficientBalance", ErrInsufficientBalance, http.StatusBadRequest},
		{"AllocationLimit", ErrAllocationLimitExceeded, http.StatusBadRequest},
		{"InvalidAmount", ErrInvalidAmount, http.StatusBadRequest},
		{"StoreUnavailable", ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := HTTPStatus(tc.err)
			if status != tc.expected {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, status, tc.expected)
			}
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(50, 120)

	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("errors.Is(err, ErrInsufficientBalance) = false, want true")
	}

	expectedMsg := "insufficient balance: required 120, available 50"
	if err.Error() != expectedMsg {
		t.Errorf("Error() = %s, want %s", err.Error(), expectedMsg)
	}

	details := ErrorDetails(err)
	if details == nil {
		t.Fatal("ErrorDetails returned nil")
	}
	if details["current_balance"] != int64(50) || details["required"] != int64(120) {
		t.Errorf("unexpected details payload: %v", details)
	}
}

func TestAllocationLimitError(t *testing.T) {
	err := NewAllocationLimitError(1000, 1500)

	if !errors.Is(err, ErrAllocationLimitExceeded) {
		t.Errorf("errors.Is(err, ErrAllocationLimitExceeded) = false, want true")
	}

	details := ErrorDetails(err)
	if details["max_limit"] != int64(1000) || details["requested"] != int64(1500) {
		t.Errorf("unexpected details payload: %v", details)
	}
}

func TestBalanceLimitError(t *testing.T) {
	err := NewBalanceLimitError(9500, 800, 10000)

	if !errors.Is(err, ErrBalanceLimitExceeded) {
		t.Errorf("errors.Is(err, ErrBalanceLimitExceeded) = false, want true")
	}

	details := ErrorDetails(err)
	if details["current_balance"] != int64(9500) ||
		details["requested"] != int64(800) ||
		details["max_limit"] != int64(10000) {
		t.Errorf("unexpected details payload: %v", details)
	}
}

func TestErrorDetailsWithoutPayload(t *testing.T) {
	if details := ErrorDetails(ErrBeneficiaryNotFound); details != nil {
		t.Errorf("ErrorDetails(ErrBeneficiaryNotFound) = %v, want nil", details)
	}
	if details := ErrorDetails(errors.New("plain")); details != nil {
		t.Errorf("ErrorDetails(plain) = %v, want nil", details)
	}
}

func TestIsNotFoundError(t *testing.T) {
	notFound := []error{
		ErrNotFound, ErrBeneficiaryNotFound, ErrStoreNotFound, ErrProductNotFound,
		ErrUserNotFound, ErrAssociationNotFound, ErrTransactionNotFound,
		ErrAllocationNotFound, ErrConfigNotFound,
	}
	for _, err := range notFound {
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}

	if IsNotFoundError(ErrInsufficientBalance) {
		t.Error("IsNotFoundError(ErrInsufficientBalance) = true, want false")
	}
}

func TestIsInfrastructureError(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	if !IsInfrastructureError(wrapped) {
		t.Error("IsInfrastructureError(wrapped) = false, want true")
	}
	if IsInfrastructureError(ErrBeneficiaryNotFound) {
		t.Error("IsInfrastructureError(ErrBeneficiaryNotFound) = true, want false")
	}
}
