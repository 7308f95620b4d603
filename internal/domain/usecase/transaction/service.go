package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// DefaultLockTTL is the recommended beneficiary-lock expiry. It must exceed
// the worst-case duration of the critical section (balance re-read, two
// writes, ledger write).
const DefaultLockTTL = 30 * time.Second

// CreateRequest is the input for creating a point-of-sale transaction.
// ProductID may be uuid.Nil; ProductName is always carried as a snapshot.
type CreateRequest struct {
	BeneficiaryQR string
	StoreQR       string
	ProductID     uuid.UUID
	ProductName   string
	Amount        int64
}

// Service is the transaction engine: it validates both scanned QR codes,
// serializes balance access through the per-beneficiary lock, debits the
// beneficiary, credits the store and writes the immutable ledger record.
type Service struct {
	beneficiaries persistence.BeneficiaryRepository
	stores        persistence.StoreRepository
	products      persistence.ProductRepository
	transactions  persistence.TransactionRepository
	locks         persistence.LockRepository
	ids           coreport.IDGenerator
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	lockTTL       time.Duration
}

// NewService creates a transaction engine. A non-positive lockTTL falls back
// to DefaultLockTTL.
func NewService(
	beneficiaries persistence.BeneficiaryRepository,
	stores persistence.StoreRepository,
	products persistence.ProductRepository,
	transactions persistence.TransactionRepository,
	locks persistence.LockRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	lockTTL time.Duration,
) *Service {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &Service{
		beneficiaries: beneficiaries,
		stores:        stores,
		products:      products,
		transactions:  transactions,
		locks:         locks,
		ids:           ids,
		timeProvider:  timeProvider,
		logger:        logger,
		lockTTL:       lockTTL,
	}
}

// Create processes a redemption. Every failure is one of the typed domain
// errors; infrastructure faults propagate wrapped in ErrStoreUnavailable.
//
// Once the beneficiary's balance has been written a crash can still leave
// the store income or ledger record behind; callers needing strict
// atomicity across those writes must reconcile out of band.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*entity.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	// Resolve and validate the beneficiary before touching the lock
	beneficiary, err := s.beneficiaries.GetByQRCode(ctx, req.BeneficiaryQR)
	if err != nil {
		return nil, err
	}
	if !beneficiary.CanTransact() {
		s.logger.Warn("Transaction rejected: beneficiary not active", map[string]any{
			"beneficiary_id": beneficiary.ID.String(),
			"status":         string(beneficiary.Status),
		})
		return nil, errs.ErrBeneficiaryInactive
	}

	store, err := s.stores.GetByQRCode(ctx, req.StoreQR)
	if err != nil {
		return nil, err
	}
	if !store.CanTransact() {
		s.logger.Warn("Transaction rejected: store not active", map[string]any{
			"store_id": store.ID.String(),
			"status":   string(store.Status),
		})
		return nil, errs.ErrStoreInactive
	}

	// A missing product is tolerated: the name snapshot already travels with
	// the request. A resolved but retired product is not.
	if req.ProductID != uuid.Nil {
		product, err := s.products.GetByID(ctx, req.ProductID)
		if err == nil {
			if product.Status != entity.StatusActive {
				return nil, errs.ErrProductInactive
			}
			if product.Points != req.Amount {
				// Stores can currently charge a different amount than the
				// listed price. Surfaced for auditing, not rejected.
				s.logger.Warn("Transaction amount differs from product price", map[string]any{
					"product_id":    product.ID.String(),
					"product_price": product.Points,
					"amount":        req.Amount,
				})
			}
		} else if !errs.IsNotFoundError(err) {
			return nil, err
		}
	}

	if err := s.locks.Acquire(ctx, beneficiary.ID, s.lockTTL); err != nil {
		return nil, err
	}
	defer func() {
		// The TTL backstops a failed release
		if relErr := s.locks.Release(ctx, beneficiary.ID); relErr != nil {
			s.logger.Warn("Failed to release beneficiary lock", map[string]any{
				"beneficiary_id": beneficiary.ID.String(),
				"error":          relErr.Error(),
			})
		}
	}()

	// Balance may have moved between validation and lock acquisition
	beneficiary, err = s.beneficiaries.GetByID(ctx, beneficiary.ID)
	if err != nil {
		return nil, err
	}

	balanceBefore := beneficiary.Balance
	balanceAfter := balanceBefore - req.Amount
	if balanceAfter < 0 {
		s.logger.Warn("Transaction rejected: insufficient balance", map[string]any{
			"beneficiary_id":  beneficiary.ID.String(),
			"current_balance": balanceBefore,
			"required":        req.Amount,
		})
		return nil, errs.NewInsufficientBalanceError(balanceBefore, req.Amount)
	}

	txn, err := entity.NewCompletedTransaction(
		s.ids.NewID(),
		beneficiary,
		store,
		req.ProductID,
		req.ProductName,
		req.Amount,
		balanceBefore,
		s.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.beneficiaries.UpdateBalance(ctx, beneficiary.ID, balanceAfter); err != nil {
		return nil, err
	}

	newIncome, err := s.stores.IncrementIncome(ctx, store.ID, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction completed", map[string]any{
		"transaction_id": txn.ID.String(),
		"beneficiary_id": beneficiary.ID.String(),
		"store_id":       store.ID.String(),
		"amount":         req.Amount,
		"balance_before": balanceBefore,
		"balance_after":  balanceAfter,
		"store_income":   newIncome,
	})
	return txn, nil
}

// Get retrieves a ledger record by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// ValidateBeneficiary resolves a scanned beneficiary QR code and reports
// whether the account may transact
func (s *Service) ValidateBeneficiary(ctx context.Context, qrCode string) (*entity.Beneficiary, bool, error) {
	beneficiary, err := s.beneficiaries.GetByQRCode(ctx, qrCode)
	if err != nil {
		return nil, false, err
	}
	return beneficiary, beneficiary.CanTransact(), nil
}

// ValidateStore resolves a scanned store QR code and reports whether the
// store may accept redemptions
func (s *Service) ValidateStore(ctx context.Context, qrCode string) (*entity.Store, bool, error) {
	store, err := s.stores.GetByQRCode(ctx, qrCode)
	if err != nil {
		return nil, false, err
	}
	return store, store.CanTransact(), nil
}
