package commands

//go:generate mockgen -source=reconcile.go -destination=../../../tests/mock/commands/reconcile_mock.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

const confirmScope = "payment.confirm"

var errLateSlotTaken = errs.New("slot was taken before the late payment")

type WebhookOutcome string

const (
	OutcomeConfirmed        WebhookOutcome = "confirmed"
	OutcomeAlreadyConfirmed WebhookOutcome = "already_confirmed"
	OutcomeLateConfirmed    WebhookOutcome = "late_confirmed"
	OutcomeLateConflict     WebhookOutcome = "late_conflict"
	OutcomeFailed           WebhookOutcome = "failed"
	OutcomeCannotConfirm    WebhookOutcome = "cannot_confirm"
)

// WebhookResult is also the cached answer for a replayed delivery.
type WebhookResult struct {
	Accepted      bool           `json:"accepted"`
	ReservationID *uuid.UUID     `json:"reservation_id,omitempty"`
	Outcome       WebhookOutcome `json:"outcome"`
	Message       string         `json:"message"`
	Replayed      bool           `json:"-"`
}

func (r *WebhookResult) err() error {
	if r.Outcome == OutcomeCannotConfirm {
		return errs.ErrCannotConfirm
	}
	return nil
}

type PaymentCommands interface {
	ProcessWebhookDelivery(ctx context.Context, fields map[string]string) (*WebhookResult, error)
}

type paymentUseCaseImpl struct {
	sideEffects
	verifier GatewayVerifier
	signer   payment.Signer
	cfg      config.GatewayConfig
	clock    clock.Clock
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	locker AdvisoryLocker,
	verifier GatewayVerifier,
	publisher EventPublisher,
	m *metrics.Metrics,
	cfg config.GatewayConfig,
	clock clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		sideEffects: sideEffects{uow: uow, locker: locker, publisher: publisher, metrics: m},
		verifier:    verifier,
		signer:      payment.NewSigner(cfg.SigningSecret),
		cfg:         cfg,
		clock:       clock,
	}
}

// ConfirmKey is the idempotency key every delivery for one intent shares.
func ConfirmKey(intentID uuid.UUID) string {
	sum := sha256.Sum256([]byte(intentID.String() + ":confirm"))
	return hex.EncodeToString(sum[:])
}

// settlement is what a committed reconciliation leaves for post-commit work.
type settlement struct {
	result *WebhookResult
	events []booking.Event
	credit *ledger.Entry
}

func (p *paymentUseCaseImpl) ProcessWebhookDelivery(ctx context.Context, fields map[string]string) (*WebhookResult, error) {
	if err := p.signer.Verify(fields); err != nil {
		slog.Warn("payment notification rejected: invalid signature",
			"tran_id", fields[payment.FieldTranID],
			"payload", fields)
		p.metrics.Webhook("rejected")
		return nil, err
	}

	n, err := payment.ParseNotification(fields)
	if err != nil {
		slog.Warn("payment notification rejected: malformed", "payload", fields, "error", err)
		p.metrics.Webhook("rejected")
		return nil, err
	}

	now := p.clock.Now()
	intent, cached, err := p.claim(ctx, n, now)
	if err != nil {
		p.metrics.Webhook("rejected")
		return nil, err
	}
	if cached != nil {
		p.metrics.Webhook("duplicate")
		slog.Info("payment notification replayed", "tran_id", n.TranID, "outcome", cached.Outcome)
		return cached, cached.err()
	}

	key := ConfirmKey(intent.ID)
	s, err := p.reconcile(ctx, key, intent, n, now)
	if err != nil {
		return nil, err
	}

	if s.credit != nil {
		p.post(ctx, *s.credit)
	}
	p.publish(ctx, s.events...)
	p.metrics.Webhook(string(s.result.Outcome))

	slog.Info("payment notification processed",
		"tran_id", n.TranID,
		"intent_id", intent.ID,
		"outcome", s.result.Outcome)
	return s.result, s.result.err()
}

// claim correlates the delivery with its intent and takes the idempotency
// key in a short transaction of its own, so a competing worker sees the
// claim before any slow verification starts.
func (p *paymentUseCaseImpl) claim(ctx context.Context, n payment.Notification, now time.Time) (*payment.Intent, *WebhookResult, error) {
	var (
		intent *payment.Intent
		cached *WebhookResult
	)
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		intent, err = p.correlate(ctx, tx, n)
		if err != nil {
			return err
		}

		key := ConfirmKey(intent.ID)
		claimed, err := tx.Idempotency().TryInsert(ctx, key, confirmScope, now, now.Add(p.cfg.IdempotencyTTL))
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if claimed {
			return nil
		}

		rec, err := tx.Idempotency().Get(ctx, key)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrIdempotencyInProgress
			}
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if rec.Status != shared.IdempotencyCompleted {
			return errs.ErrIdempotencyInProgress
		}

		var res WebhookResult
		if err := json.Unmarshal(rec.Result, &res); err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		res.Replayed = true
		cached = &res
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return intent, cached, nil
}

func (p *paymentUseCaseImpl) correlate(ctx context.Context, tx shared.Tx, n payment.Notification) (*payment.Intent, error) {
	intent, err := tx.PaymentIntents().FindByTranID(ctx, n.TranID)
	if err == nil {
		return intent, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ref, parseErr := uuid.Parse(n.IntentRef)
	if parseErr != nil {
		return nil, errs.ErrIntentNotFound
	}
	intent, err = tx.PaymentIntents().GetForUpdate(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrIntentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return intent, nil
}

func (p *paymentUseCaseImpl) reconcile(ctx context.Context, key string, intent *payment.Intent, n payment.Notification, now time.Time) (*settlement, error) {
	received, err := payment.ToMinorUnits(n.Amount, p.cfg.AmountScale)
	if err != nil || received != intent.Amount {
		notes := fmt.Sprintf("expected %d, delivered %q", intent.Amount, n.Amount)
		p.recordTrustFailure(ctx, key, intent.ID, n, payment.TransactionAmountMismatch, notes, now)
		return nil, errs.ErrAmountMismatch
	}

	if n.Status.IsSuccess() {
		if err := p.verify(ctx, n, intent.Amount); err != nil {
			p.recordTrustFailure(ctx, key, intent.ID, n, payment.TransactionVerificationFailed, err.Error(), now)
			return nil, errs.Mark(err, errs.ErrVerificationFailed)
		}
	}

	var s *settlement
	if n.Status.IsSuccess() {
		s, err = p.settleSuccess(ctx, key, intent.ID, n, now)
	} else {
		s, err = p.settleFailure(ctx, key, intent.ID, n, now)
	}
	if err != nil {
		p.releaseClaim(ctx, key)
		p.metrics.Webhook("error")
		if errs.Is(err, errs.ErrReservationNotFound) || errs.Is(err, payment.ErrIntentFinalized) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return s, nil
}

// verify asks the gateway itself; anything short of a clear yes fails closed.
func (p *paymentUseCaseImpl) verify(ctx context.Context, n payment.Notification, expected int64) error {
	vctx, cancel := context.WithTimeout(ctx, p.cfg.VerifyTimeout)
	defer cancel()

	v, err := p.verifier.Verify(vctx, n)
	if err != nil {
		return errs.Wrap(err, "gateway verification unavailable")
	}
	if !v.Valid {
		return errs.New("gateway reports delivery invalid: " + v.Notes)
	}
	if v.TranID != "" && v.TranID != n.TranID {
		return errs.New("gateway reports a different tran_id: " + v.TranID)
	}
	if v.Amount != "" {
		amount, err := payment.ToMinorUnits(v.Amount, p.cfg.AmountScale)
		if err != nil || amount != expected {
			return errs.New("gateway reports a different amount: " + v.Amount)
		}
	}
	return nil
}

// recordTrustFailure keeps the audit row and gives the claim back so a
// genuine delivery for the same intent can still complete.
func (p *paymentUseCaseImpl) recordTrustFailure(ctx context.Context, key string, intentID uuid.UUID, n payment.Notification, status payment.TransactionStatus, notes string, now time.Time) {
	p.metrics.Webhook("rejected")
	slog.Warn("payment notification failed trust check",
		"tran_id", n.TranID,
		"intent_id", intentID,
		"status", status,
		"notes", notes,
		"payload", n.Raw)

	err := p.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.PaymentTransactions().Record(ctx, payment.NewTransaction(intentID, n, status, false, notes, now)); err != nil {
			return err
		}
		return tx.Idempotency().Release(ctx, key)
	})
	if err != nil {
		slog.Error("failed to record rejected payment notification", "tran_id", n.TranID, "error", err)
	}
}

func (p *paymentUseCaseImpl) releaseClaim(ctx context.Context, key string) {
	err := p.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key)
	})
	if err != nil {
		slog.Error("failed to release idempotency claim", "key", key, "error", err)
	}
}

func complete(ctx context.Context, tx shared.Tx, key string, res *WebhookResult) error {
	body, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return tx.Idempotency().Complete(ctx, key, body)
}

func (p *paymentUseCaseImpl) settleFailure(ctx context.Context, key string, intentID uuid.UUID, n payment.Notification, now time.Time) (*settlement, error) {
	var s settlement
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s = settlement{}
		intent, b, err := p.load(ctx, tx, intentID)
		if err != nil {
			return err
		}

		txn := payment.NewTransaction(intent.ID, n, n.Status.TransactionStatus(), true, "gateway reported "+string(n.Status), now)
		if _, err := tx.PaymentTransactions().Record(ctx, txn); err != nil {
			return err
		}
		if err := intent.MarkFailed(n.ValID, now); err == nil {
			if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
				return err
			}
		} else {
			slog.Info("failure delivered for a settled intent", "intent_id", intent.ID, "status", intent.Status)
		}

		ev := booking.NewEvent(b, booking.EventPaymentFailed, b.Status(), now).With("gateway_status", string(n.Status))
		if err := tx.Events().Append(ctx, ev); err != nil {
			return err
		}

		id := b.ID()
		s.result = &WebhookResult{
			Accepted:      false,
			ReservationID: &id,
			Outcome:       OutcomeFailed,
			Message:       "payment was not completed",
		}
		s.events = []booking.Event{ev}
		return complete(ctx, tx, key, s.result)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *paymentUseCaseImpl) load(ctx context.Context, tx shared.Tx, intentID uuid.UUID) (*payment.Intent, *booking.Booking, error) {
	intent, err := tx.PaymentIntents().GetForUpdate(ctx, intentID)
	if err != nil {
		return nil, nil, err
	}
	b, err := tx.Bookings().GetForUpdate(ctx, intent.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrReservationNotFound
		}
		return nil, nil, err
	}
	return intent, b, nil
}

func (p *paymentUseCaseImpl) settleSuccess(ctx context.Context, key string, intentID uuid.UUID, n payment.Notification, now time.Time) (*settlement, error) {
	var s settlement
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s = settlement{}
		intent, b, err := p.load(ctx, tx, intentID)
		if err != nil {
			return err
		}

		switch b.Status() {
		case booking.StatusConfirmed:
			err = p.alreadyConfirmed(ctx, tx, &s, intent, b, n, now)
		case booking.StatusHold:
			err = p.confirm(ctx, tx, &s, intent, b, n, now)
		case booking.StatusExpired:
			err = p.confirmLate(ctx, tx, &s, intent, b, n, now)
		default:
			err = p.cannotConfirm(ctx, tx, &s, intent, b, n, now)
		}
		if err != nil {
			return err
		}
		return complete(ctx, tx, key, s.result)
	})
	if errs.Is(err, errLateSlotTaken) {
		slog.Info("late payment lost its slot at insert", "intent_id", intentID)
		err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			s = settlement{}
			intent, b, err := p.load(ctx, tx, intentID)
			if err != nil {
				return err
			}
			if err := p.lateConflict(ctx, tx, &s, intent, b, n, now); err != nil {
				return err
			}
			return complete(ctx, tx, key, s.result)
		})
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *paymentUseCaseImpl) alreadyConfirmed(ctx context.Context, tx shared.Tx, s *settlement, intent *payment.Intent, b *booking.Booking, n payment.Notification, now time.Time) error {
	recorded, err := tx.PaymentTransactions().Record(ctx, payment.NewTransaction(intent.ID, n, payment.TransactionSuccess, true, "reservation already confirmed", now))
	if err != nil {
		return err
	}
	if !recorded {
		slog.Info("duplicate success delivery", "tran_id", n.TranID)
	}
	id := b.ID()
	s.result = &WebhookResult{
		Accepted:      true,
		ReservationID: &id,
		Outcome:       OutcomeAlreadyConfirmed,
		Message:       "reservation already confirmed",
	}
	return nil
}

func (p *paymentUseCaseImpl) confirm(ctx context.Context, tx shared.Tx, s *settlement, intent *payment.Intent, b *booking.Booking, n payment.Notification, now time.Time) error {
	if err := p.markPaid(ctx, tx, intent, n, now, "confirmed hold"); err != nil {
		return err
	}
	if err := b.Confirm(now); err != nil {
		return err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return err
	}

	ev := booking.NewEvent(b, booking.EventConfirmed, booking.StatusHold, now)
	if err := tx.Events().Append(ctx, ev); err != nil {
		return err
	}

	id := b.ID()
	credit := ledger.NewAdvanceCredit(b.OwnerID(), b.ID(), b.OwnerAdvanceCredit(), now)
	s.result = &WebhookResult{
		Accepted:      true,
		ReservationID: &id,
		Outcome:       OutcomeConfirmed,
		Message:       "reservation confirmed",
	}
	s.events = []booking.Event{ev}
	s.credit = &credit
	return nil
}

// confirmLate resurrects an expired hold when its slot is still free. A
// competing insert can still win between the check and the occupancy
// insert; that surfaces as errLateSlotTaken and the caller retries on the
// conflict branch in a fresh transaction.
func (p *paymentUseCaseImpl) confirmLate(ctx context.Context, tx shared.Tx, s *settlement, intent *payment.Intent, b *booking.Booking, n payment.Notification, now time.Time) error {
	id := b.ID()
	free, err := tx.Reads().IsSlotFree(ctx, b.ConflictGroupID(), b.StartAt(), b.BlockedEndAt(), &id)
	if err != nil {
		return err
	}
	if !free {
		return p.lateConflict(ctx, tx, s, intent, b, n, now)
	}

	if err := b.ConfirmLate(now); err != nil {
		return err
	}
	err = tx.Occupancies().Insert(ctx, shared.Occupancy{
		ConflictGroupID: b.ConflictGroupID(),
		BookingID:       &id,
		StartAt:         b.StartAt(),
		BlockedEndAt:    b.BlockedEndAt(),
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errLateSlotTaken
		}
		return err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return err
	}
	if err := p.markPaid(ctx, tx, intent, n, now, "late payment accepted"); err != nil {
		return err
	}

	ev := booking.NewEvent(b, booking.EventLatePaymentAccepted, booking.StatusExpired, now)
	if err := tx.Events().Append(ctx, ev); err != nil {
		return err
	}

	credit := ledger.NewAdvanceCredit(b.OwnerID(), b.ID(), b.OwnerAdvanceCredit(), now)
	s.result = &WebhookResult{
		Accepted:      true,
		ReservationID: &id,
		Outcome:       OutcomeLateConfirmed,
		Message:       "late payment accepted, reservation confirmed",
	}
	s.events = []booking.Event{ev}
	s.credit = &credit
	return nil
}

func (p *paymentUseCaseImpl) lateConflict(ctx context.Context, tx shared.Tx, s *settlement, intent *payment.Intent, b *booking.Booking, n payment.Notification, now time.Time) error {
	if err := intent.MarkLateConflict(n.ValID, now); err != nil {
		return err
	}
	if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
		return err
	}
	txn := payment.NewTransaction(intent.ID, n, payment.TransactionSuccess, true, "slot taken before late payment", now)
	if _, err := tx.PaymentTransactions().Record(ctx, txn); err != nil {
		return err
	}

	rf := refund.NewLatePaymentConflict(b.ID(), intent.ID, intent.Amount, now)
	if err := tx.Refunds().Create(ctx, rf); err != nil {
		return err
	}

	ev := booking.NewEvent(b, booking.EventLatePaymentConflict, b.Status(), now).
		With("refund_id", rf.ID.String()).
		With("refund_amount", rf.Amount)
	if err := tx.Events().Append(ctx, ev); err != nil {
		return err
	}

	id := b.ID()
	s.result = &WebhookResult{
		Accepted:      true,
		ReservationID: &id,
		Outcome:       OutcomeLateConflict,
		Message:       "slot no longer available, full refund approved",
	}
	s.events = []booking.Event{ev}
	s.credit = nil
	return nil
}

// cannotConfirm keeps the audit trail for money that reached a closed
// reservation. Settling it is an operator task.
func (p *paymentUseCaseImpl) cannotConfirm(ctx context.Context, tx shared.Tx, s *settlement, intent *payment.Intent, b *booking.Booking, n payment.Notification, now time.Time) error {
	notes := "reservation is " + string(b.Status())
	if _, err := tx.PaymentTransactions().Record(ctx, payment.NewTransaction(intent.ID, n, payment.TransactionSuccess, true, notes, now)); err != nil {
		return err
	}
	slog.Error("payment received for a closed reservation",
		"reservation_id", b.ID(),
		"status", b.Status(),
		"intent_id", intent.ID,
		"tran_id", n.TranID)

	id := b.ID()
	s.result = &WebhookResult{
		Accepted:      false,
		ReservationID: &id,
		Outcome:       OutcomeCannotConfirm,
		Message:       notes,
	}
	return nil
}

func (p *paymentUseCaseImpl) markPaid(ctx context.Context, tx shared.Tx, intent *payment.Intent, n payment.Notification, now time.Time, notes string) error {
	if err := intent.MarkSucceeded(n.ValID, now); err != nil {
		return err
	}
	if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
		return err
	}
	_, err := tx.PaymentTransactions().Record(ctx, payment.NewTransaction(intent.ID, n, payment.TransactionSuccess, true, notes, now))
	return err
}
