package billing

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
	"github.com/ecotrace/itad-api/internal/domain/repository"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// CommissionUseCase drives the commission payout lifecycle:
// pending → approved → paid.
type CommissionUseCase struct {
	tx          repository.TxRunner
	commissions repository.CommissionRepository
	log         *logger.Logger
}

// NewCommissionUseCase wires the use case.
func NewCommissionUseCase(tx repository.TxRunner, commissions repository.CommissionRepository, log *logger.Logger) *CommissionUseCase {
	return &CommissionUseCase{tx: tx, commissions: commissions, log: log}
}

// GetByID fetches one commission.
func (uc *CommissionUseCase) GetByID(ctx context.Context, id string) (*dto.CommissionResponse, error) {
	c, err := uc.commissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCommissionResponse(c), nil
}

// List pages commissions, optionally filtered by status and period (YYYY-MM).
func (uc *CommissionUseCase) List(ctx context.Context, status, period string, page dto.PageRequest) ([]*dto.CommissionResponse, error) {
	page.DefaultPage()
	if status != "" && !lifecycle.ValidCommissionStatus(entity.CommissionStatus(status)) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.commissions.List(ctx, status, period, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCommissionResponse(c))
	}
	return out, nil
}

// UpdateStatus applies a validated commission transition. Reaching `paid`
// stamps the paid timestamp once; an idempotent repeat never overwrites it.
func (uc *CommissionUseCase) UpdateStatus(ctx context.Context, id string, target entity.CommissionStatus) (*dto.CommissionResponse, error) {
	if !lifecycle.ValidCommissionStatus(target) {
		return nil, domain.ErrInvalidInput
	}

	var c *entity.Commission
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		c, err = r.Commissions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		noop, err := lifecycle.CheckCommission(c.Status, target)
		if err != nil || noop {
			return err
		}
		now := time.Now()
		c.Status = target
		if target == entity.CommissionPaid && c.PaidAt == nil {
			c.PaidAt = &now
		}
		c.UpdatedAt = now
		return r.Commissions.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToCommissionResponse(c), nil
}
