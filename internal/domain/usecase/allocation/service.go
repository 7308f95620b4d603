package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// AllocateRequest is the input for an administrative credit issuance
type AllocateRequest struct {
	BeneficiaryID uuid.UUID
	AdminID       uuid.UUID
	Amount        int64
	Notes         string
}

// Service is the allocation engine: it validates the configured limits and
// credits a beneficiary's balance, writing an immutable allocation record.
//
// Allocations take the same per-beneficiary lock as transactions so that a
// concurrent allocate+transact pair cannot interleave on the balance
// read-modify-write.
type Service struct {
	beneficiaries persistence.BeneficiaryRepository
	allocations   persistence.AllocationRepository
	config        persistence.ConfigRepository
	locks         persistence.LockRepository
	ids           coreport.IDGenerator
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	lockTTL       time.Duration
}

// NewService creates an allocation engine
func NewService(
	beneficiaries persistence.BeneficiaryRepository,
	allocations persistence.AllocationRepository,
	config persistence.ConfigRepository,
	locks persistence.LockRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	lockTTL time.Duration,
) *Service {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &Service{
		beneficiaries: beneficiaries,
		allocations:   allocations,
		config:        config,
		locks:         locks,
		ids:           ids,
		timeProvider:  timeProvider,
		logger:        logger,
		lockTTL:       lockTTL,
	}
}

// Allocate credits a beneficiary. Failures are typed domain errors carrying
// the limit payloads; the balance is left untouched on any failure.
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (*entity.Allocation, error) {
	if req.Amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	beneficiary, err := s.beneficiaries.GetByID(ctx, req.BeneficiaryID)
	if err != nil {
		return nil, err
	}
	if !beneficiary.CanTransact() {
		return nil, errs.ErrBeneficiaryInactive
	}

	maxAllocation, err := s.config.GetInt(ctx, entity.ConfigMaxAllocationLimit, entity.DefaultMaxAllocationLimit)
	if err != nil {
		return nil, err
	}
	maxBalance, err := s.config.GetInt(ctx, entity.ConfigMaxBalanceLimit, entity.DefaultMaxBalanceLimit)
	if err != nil {
		return nil, err
	}

	if req.Amount > maxAllocation {
		s.logger.Warn("Allocation rejected: single-allocation limit exceeded", map[string]any{
			"beneficiary_id": beneficiary.ID.String(),
			"max_limit":      maxAllocation,
			"requested":      req.Amount,
		})
		return nil, errs.NewAllocationLimitError(maxAllocation, req.Amount)
	}

	if err := s.locks.Acquire(ctx, beneficiary.ID, s.lockTTL); err != nil {
		return nil, err
	}
	defer func() {
		if relErr := s.locks.Release(ctx, beneficiary.ID); relErr != nil {
			s.logger.Warn("Failed to release beneficiary lock", map[string]any{
				"beneficiary_id": beneficiary.ID.String(),
				"error":          relErr.Error(),
			})
		}
	}()

	// Re-read under the lock; a transaction may have debited in between
	beneficiary, err = s.beneficiaries.GetByID(ctx, beneficiary.ID)
	if err != nil {
		return nil, err
	}

	balanceBefore := beneficiary.Balance
	if balanceBefore+req.Amount > maxBalance {
		s.logger.Warn("Allocation rejected: balance limit exceeded", map[string]any{
			"beneficiary_id":  beneficiary.ID.String(),
			"current_balance": balanceBefore,
			"requested":       req.Amount,
			"max_limit":       maxBalance,
		})
		return nil, errs.NewBalanceLimitError(balanceBefore, req.Amount, maxBalance)
	}

	alloc, err := entity.NewAllocation(
		s.ids.NewID(),
		beneficiary.ID,
		req.AdminID,
		req.Amount,
		balanceBefore,
		req.Notes,
		s.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.beneficiaries.UpdateBalance(ctx, beneficiary.ID, alloc.BalanceAfter); err != nil {
		return nil, err
	}

	if err := s.allocations.Create(ctx, alloc); err != nil {
		return nil, err
	}

	s.logger.Info("Allocation completed", map[string]any{
		"allocation_id":  alloc.ID.String(),
		"beneficiary_id": beneficiary.ID.String(),
		"admin_id":       req.AdminID.String(),
		"amount":         req.Amount,
		"balance_before": balanceBefore,
		"balance_after":  alloc.BalanceAfter,
	})
	return alloc, nil
}

// Get retrieves an allocation record by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Allocation, error) {
	return s.allocations.GetByID(ctx, id)
}
