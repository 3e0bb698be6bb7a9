package commands

//go:generate mockgen -source=manual_block.go -destination=../../../tests/mock/commands/manual_block_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type ManualBlockRequest struct {
	ConflictGroupID uuid.UUID
	OwnerID         uuid.UUID
	StartAt         time.Time
	EndAt           time.Time
	Reason          string
}

type ManualBlockCommands interface {
	CreateManualBlock(ctx context.Context, req ManualBlockRequest) (*block.ManualBlock, error)
	RemoveManualBlock(ctx context.Context, blockID, ownerID uuid.UUID) error
}

type manualBlockUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewManualBlockUseCase(uow shared.UnitOfWork, clock clock.Clock) ManualBlockCommands {
	return &manualBlockUseCaseImpl{uow: uow, clock: clock}
}

func (m *manualBlockUseCaseImpl) CreateManualBlock(ctx context.Context, req ManualBlockRequest) (*block.ManualBlock, error) {
	now := m.clock.Now()
	mb, err := block.New(req.ConflictGroupID, req.OwnerID, req.StartAt, req.EndAt, req.Reason, now)
	if err != nil {
		return nil, err
	}

	err = m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.ManualBlocks().Create(ctx, mb); err != nil {
			return err
		}
		id := mb.ID
		err := tx.Occupancies().Insert(ctx, shared.Occupancy{
			ConflictGroupID: mb.ConflictGroupID,
			BlockID:         &id,
			StartAt:         mb.StartAt,
			BlockedEndAt:    mb.EndAt,
		})
		if infra.IsKind(err, infra.KindConflict) {
			return &booking.SlotConflictError{
				ConflictGroupID: mb.ConflictGroupID,
				Start:           mb.StartAt,
				BlockedEnd:      mb.EndAt,
			}
		}
		return err
	})
	if err != nil {
		if errs.Is(err, booking.ErrSlotConflict) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("manual block created",
		"block_id", mb.ID,
		"conflict_group_id", mb.ConflictGroupID,
		"start_at", mb.StartAt,
		"end_at", mb.EndAt)
	return mb, nil
}

// RemoveManualBlock only lets the block's owner lift it.
func (m *manualBlockUseCaseImpl) RemoveManualBlock(ctx context.Context, blockID, ownerID uuid.UUID) error {
	now := m.clock.Now()
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		mb, err := tx.ManualBlocks().GetForUpdate(ctx, blockID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrManualBlockNotFound
			}
			return err
		}
		if mb.OwnerID != ownerID {
			return errs.ErrManualBlockNotFound
		}
		if err := mb.Remove(now); err != nil {
			return err
		}
		if err := tx.ManualBlocks().Update(ctx, mb); err != nil {
			return err
		}
		return tx.Occupancies().DeleteByBlock(ctx, mb.ID)
	})
	if err != nil {
		if errs.Is(err, errs.ErrManualBlockNotFound) || errs.Is(err, block.ErrAlreadyRemoved) {
			return err
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
