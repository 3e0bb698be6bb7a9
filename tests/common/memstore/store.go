//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork for use case tests. It
// serializes transactions, rolls back on error and enforces the same
// exclusion and uniqueness rules the schema does.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type targetKey struct {
	resourceID uuid.UUID
	profileID  uuid.UUID
}

type state struct {
	seq          int64
	bookings     map[uuid.UUID]booking.Snapshot
	occupancies  []shared.Occupancy
	intents      map[uuid.UUID]payment.Intent
	transactions []payment.Transaction
	refunds      []refund.Refund
	events       []booking.Event
	ledger       []ledger.Entry
	blocks       map[uuid.UUID]block.ManualBlock
	idempotency  map[string]shared.IdempotencyRecord
}

func newState() *state {
	return &state{
		bookings:    map[uuid.UUID]booking.Snapshot{},
		intents:     map[uuid.UUID]payment.Intent{},
		blocks:      map[uuid.UUID]block.ManualBlock{},
		idempotency: map[string]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	return &state{
		seq:          s.seq,
		bookings:     maps.Clone(s.bookings),
		occupancies:  slices.Clone(s.occupancies),
		intents:      maps.Clone(s.intents),
		transactions: slices.Clone(s.transactions),
		refunds:      slices.Clone(s.refunds),
		events:       slices.Clone(s.events),
		ledger:       slices.Clone(s.ledger),
		blocks:       maps.Clone(s.blocks),
		idempotency:  maps.Clone(s.idempotency),
	}
}

type Store struct {
	mu       sync.Mutex
	st       *state
	targets  map[targetKey]shared.HoldTarget
	profiles map[uuid.UUID]pricing.Profile
	faults   map[string]error
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		st:       newState(),
		targets:  map[targetKey]shared.HoldTarget{},
		profiles: map[uuid.UUID]pricing.Profile{},
		faults:   map[string]error{},
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.st.clone()
	if err := fn(ctx, &memTx{store: s, st: working}); err != nil {
		return err
	}
	s.st = working
	return nil
}

func (s *Store) Reads() shared.Reads {
	return &reads{store: s, locked: false}
}

// ---------------------------------------------------------------------------
// Seeding
// ---------------------------------------------------------------------------

// AddTarget registers a resource/profile pair CreateHold can resolve, and
// makes the profile visible to availability reads.
func (s *Store) AddTarget(t shared.HoldTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[targetKey{t.ResourceID, t.Profile.ID}] = t
	s.profiles[t.Profile.ID] = t.Profile
}

// SeedBooking stores b and, when it occupies its slot, its occupancy row.
func (s *Store) SeedBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.bookings[b.ID()] = b.Snapshot()
	if b.Status().Occupying() {
		id := b.ID()
		s.st.occupancies = append(s.st.occupancies, shared.Occupancy{
			ID:              uuid.New(),
			ConflictGroupID: b.ConflictGroupID(),
			BookingID:       &id,
			StartAt:         b.StartAt(),
			BlockedEndAt:    b.BlockedEndAt(),
		})
	}
}

func (s *Store) SeedIntent(i *payment.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.intents[i.ID] = *i
}

func (s *Store) SeedBlock(b *block.ManualBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.blocks[b.ID] = *b
	id := b.ID
	s.st.occupancies = append(s.st.occupancies, shared.Occupancy{
		ID:              uuid.New(),
		ConflictGroupID: b.ConflictGroupID,
		BlockID:         &id,
		StartAt:         b.StartAt,
		BlockedEndAt:    b.EndAt,
	})
}

// Fail makes the named repository operation (e.g. "Refunds.Create") return
// err until cleared with a nil err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.st.bookings[id]
	if !ok {
		return nil, false
	}
	return booking.Reconstruct(snap), true
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.bookings)
}

func (s *Store) Intent(id uuid.UUID) (payment.Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.st.intents[id]
	return i, ok
}

func (s *Store) IntentsFor(bookingID uuid.UUID) []payment.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payment.Intent
	for _, i := range s.st.intents {
		if i.BookingID == bookingID {
			out = append(out, i)
		}
	}
	return out
}

func (s *Store) Occupancies(conflictGroupID uuid.UUID) []shared.Occupancy {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shared.Occupancy
	for _, o := range s.st.occupancies {
		if o.ConflictGroupID == conflictGroupID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) Transactions() []payment.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.transactions)
}

func (s *Store) Refunds() []refund.Refund {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.refunds)
}

func (s *Store) Events(bookingID uuid.UUID) []booking.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.EventType
	for _, e := range s.st.events {
		if e.BookingID == bookingID {
			out = append(out, e.Type)
		}
	}
	return out
}

func (s *Store) LedgerEntries(bookingID uuid.UUID) []ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Entry
	for _, e := range s.st.ledger {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) ManualBlock(id uuid.UUID) (block.ManualBlock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.blocks[id]
	return b, ok
}

func (s *Store) IdempotencyRecord(key string) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.idempotency[key]
	return r, ok
}

// ---------------------------------------------------------------------------
// Transaction
// ---------------------------------------------------------------------------

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) fault(op string) error {
	return t.store.faults[op]
}

func (t *memTx) Bookings() shared.BookingRepository                       { return bookings{t} }
func (t *memTx) Occupancies() shared.OccupancyRepository                  { return occupancies{t} }
func (t *memTx) PaymentIntents() shared.PaymentIntentRepository           { return intents{t} }
func (t *memTx) PaymentTransactions() shared.PaymentTransactionRepository { return transactions{t} }
func (t *memTx) Refunds() shared.RefundRepository                         { return refunds{t} }
func (t *memTx) Events() shared.EventRepository                           { return events{t} }
func (t *memTx) Ledger() shared.LedgerRepository                          { return ledgerRepo{t} }
func (t *memTx) ManualBlocks() shared.ManualBlockRepository               { return blocks{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository                { return idempotency{t} }
func (t *memTx) Reads() shared.Reads                                      { return &reads{store: t.store, tx: t, locked: true} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type bookings struct{ tx *memTx }

func (r bookings) NextNumber(_ context.Context, now time.Time) (string, error) {
	r.tx.st.seq++
	return fmt.Sprintf("SZ-%s-%06d", now.UTC().Format("20060102"), r.tx.st.seq), nil
}

func (r bookings) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.fault("Bookings.Create"); err != nil {
		return err
	}
	if _, ok := r.tx.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking exists", nil, infra.KindDuplicateKey)
	}
	r.tx.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookings) GetForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.tx.st.bookings[id]
	if !ok || snap.DeletedAt != nil {
		return nil, notFound("booking not found")
	}
	return booking.Reconstruct(snap), nil
}

func (r bookings) Update(_ context.Context, b *booking.Booking) error {
	if err := r.tx.fault("Bookings.Update"); err != nil {
		return err
	}
	r.tx.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

type occupancies struct{ tx *memTx }

func (r occupancies) Insert(_ context.Context, o shared.Occupancy) error {
	for _, existing := range r.tx.st.occupancies {
		if existing.ConflictGroupID == o.ConflictGroupID &&
			existing.StartAt.Before(o.BlockedEndAt) && o.StartAt.Before(existing.BlockedEndAt) {
			return infra.WrapRepoErr("occupancy overlaps", nil, infra.KindConflict)
		}
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.tx.st.occupancies = append(r.tx.st.occupancies, o)
	return nil
}

func (r occupancies) DeleteByBooking(_ context.Context, bookingID uuid.UUID) error {
	r.tx.st.occupancies = slices.DeleteFunc(r.tx.st.occupancies, func(o shared.Occupancy) bool {
		return o.BookingID != nil && *o.BookingID == bookingID
	})
	return nil
}

func (r occupancies) DeleteByBlock(_ context.Context, blockID uuid.UUID) error {
	r.tx.st.occupancies = slices.DeleteFunc(r.tx.st.occupancies, func(o shared.Occupancy) bool {
		return o.BlockID != nil && *o.BlockID == blockID
	})
	return nil
}

type intents struct{ tx *memTx }

func (r intents) Create(_ context.Context, i *payment.Intent) error {
	for _, existing := range r.tx.st.intents {
		if existing.GatewayTranID == i.GatewayTranID {
			return infra.WrapRepoErr("tran_id exists", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.st.intents[i.ID] = *i
	return nil
}

func (r intents) FindByTranID(_ context.Context, tranID string) (*payment.Intent, error) {
	for _, i := range r.tx.st.intents {
		if i.GatewayTranID == tranID {
			return &i, nil
		}
	}
	return nil, notFound("payment intent not found")
}

func (r intents) GetForUpdate(_ context.Context, id uuid.UUID) (*payment.Intent, error) {
	i, ok := r.tx.st.intents[id]
	if !ok {
		return nil, notFound("payment intent not found")
	}
	return &i, nil
}

func (r intents) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*payment.Intent, error) {
	var out []*payment.Intent
	for _, i := range r.tx.st.intents {
		if i.BookingID == bookingID {
			out = append(out, &i)
		}
	}
	slices.SortFunc(out, func(a, b *payment.Intent) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r intents) Update(_ context.Context, i *payment.Intent) error {
	r.tx.st.intents[i.ID] = *i
	return nil
}

type transactions struct{ tx *memTx }

func (r transactions) Record(_ context.Context, t payment.Transaction) (bool, error) {
	if err := r.tx.fault("PaymentTransactions.Record"); err != nil {
		return false, err
	}
	for _, existing := range r.tx.st.transactions {
		if existing.GatewayTranID == t.GatewayTranID && existing.Status == t.Status {
			return false, nil
		}
	}
	r.tx.st.transactions = append(r.tx.st.transactions, t)
	return true, nil
}

type refunds struct{ tx *memTx }

func (r refunds) Create(_ context.Context, rf refund.Refund) error {
	if err := r.tx.fault("Refunds.Create"); err != nil {
		return err
	}
	r.tx.st.refunds = append(r.tx.st.refunds, rf)
	return nil
}

type events struct{ tx *memTx }

func (r events) Append(_ context.Context, e booking.Event) error {
	r.tx.st.events = append(r.tx.st.events, e)
	return nil
}

type ledgerRepo struct{ tx *memTx }

func (r ledgerRepo) Post(_ context.Context, e ledger.Entry) (bool, error) {
	for _, existing := range r.tx.st.ledger {
		if existing.BookingID == e.BookingID && existing.Kind == e.Kind {
			return false, nil
		}
	}
	r.tx.st.ledger = append(r.tx.st.ledger, e)
	return true, nil
}

type blocks struct{ tx *memTx }

func (r blocks) Create(_ context.Context, b *block.ManualBlock) error {
	r.tx.st.blocks[b.ID] = *b
	return nil
}

func (r blocks) GetForUpdate(_ context.Context, id uuid.UUID) (*block.ManualBlock, error) {
	b, ok := r.tx.st.blocks[id]
	if !ok {
		return nil, notFound("manual block not found")
	}
	return &b, nil
}

func (r blocks) Update(_ context.Context, b *block.ManualBlock) error {
	r.tx.st.blocks[b.ID] = *b
	return nil
}

type idempotency struct{ tx *memTx }

func (r idempotency) TryInsert(_ context.Context, key, scope string, now, expiresAt time.Time) (bool, error) {
	if existing, ok := r.tx.st.idempotency[key]; ok && existing.ExpiresAt.After(now) {
		return false, nil
	}
	r.tx.st.idempotency[key] = shared.IdempotencyRecord{
		Key:       key,
		Scope:     scope,
		Status:    shared.IdempotencyProcessing,
		ExpiresAt: expiresAt,
	}
	return true, nil
}

func (r idempotency) Get(_ context.Context, key string) (*shared.IdempotencyRecord, error) {
	rec, ok := r.tx.st.idempotency[key]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r idempotency) Complete(_ context.Context, key string, result []byte) error {
	rec, ok := r.tx.st.idempotency[key]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyCompleted
	rec.Result = slices.Clone(result)
	r.tx.st.idempotency[key] = rec
	return nil
}

func (r idempotency) Release(_ context.Context, key string) error {
	if rec, ok := r.tx.st.idempotency[key]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.tx.st.idempotency, key)
	}
	return nil
}

func (r idempotency) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for key, rec := range r.tx.st.idempotency {
		if !rec.ExpiresAt.After(now) {
			delete(r.tx.st.idempotency, key)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

type reads struct {
	store  *Store
	tx     *memTx
	locked bool
}

// view runs fn against the transaction's state, or the committed state under
// the store lock when called outside a transaction.
func (r *reads) view(fn func(st *state)) {
	if r.locked {
		fn(r.tx.st)
		return
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fn(r.store.st)
}

func (r *reads) HoldTarget(_ context.Context, resourceID, pricingProfileID uuid.UUID) (*shared.HoldTarget, error) {
	var (
		t  shared.HoldTarget
		ok bool
	)
	r.view(func(*state) {
		t, ok = r.store.targets[targetKey{resourceID, pricingProfileID}]
	})
	if !ok {
		return nil, notFound("hold target not found")
	}
	return &t, nil
}

func (r *reads) Profile(_ context.Context, pricingProfileID uuid.UUID) (*pricing.Profile, error) {
	var (
		p  pricing.Profile
		ok bool
	)
	r.view(func(*state) {
		p, ok = r.store.profiles[pricingProfileID]
	})
	if !ok {
		return nil, notFound("pricing profile not found")
	}
	return &p, nil
}

func (r *reads) Booking(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		snap booking.Snapshot
		ok   bool
	)
	r.view(func(st *state) {
		snap, ok = st.bookings[id]
	})
	if !ok || snap.DeletedAt != nil {
		return nil, notFound("booking not found")
	}
	return booking.Reconstruct(snap), nil
}

func (r *reads) Occupants(_ context.Context, conflictGroupID uuid.UUID, from, to time.Time) ([]availability.Occupant, error) {
	var out []availability.Occupant
	r.view(func(st *state) {
		for _, o := range st.occupancies {
			if o.ConflictGroupID != conflictGroupID || !o.StartAt.Before(to) || !o.BlockedEndAt.After(from) {
				continue
			}
			occ := availability.Occupant{Start: o.StartAt, End: o.BlockedEndAt}
			if o.BookingID != nil {
				occ.Kind, occ.ID = availability.OccupantReservation, *o.BookingID
			} else if o.BlockID != nil {
				occ.Kind, occ.ID = availability.OccupantManualBlock, *o.BlockID
			}
			out = append(out, occ)
		}
	})
	slices.SortFunc(out, func(a, b availability.Occupant) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (r *reads) IsSlotFree(_ context.Context, conflictGroupID uuid.UUID, start, blockedEnd time.Time, exclude *uuid.UUID) (bool, error) {
	free := true
	r.view(func(st *state) {
		for _, o := range st.occupancies {
			if o.ConflictGroupID != conflictGroupID {
				continue
			}
			if exclude != nil && o.BookingID != nil && *o.BookingID == *exclude {
				continue
			}
			if o.StartAt.Before(blockedEnd) && start.Before(o.BlockedEndAt) {
				free = false
				return
			}
		}
	})
	return free, nil
}

func (r *reads) DueHolds(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return r.due(limit, func(s booking.Snapshot) (time.Time, bool) {
		if s.Status != booking.StatusHold || s.HoldExpiresAt == nil {
			return time.Time{}, false
		}
		return *s.HoldExpiresAt, !s.HoldExpiresAt.After(now)
	}), nil
}

func (r *reads) DueCompletions(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return r.due(limit, func(s booking.Snapshot) (time.Time, bool) {
		return s.EndAt, s.Status == booking.StatusConfirmed && !s.EndAt.After(now)
	}), nil
}

func (r *reads) due(limit int, match func(booking.Snapshot) (time.Time, bool)) []uuid.UUID {
	type candidate struct {
		id uuid.UUID
		at time.Time
	}
	var found []candidate
	r.view(func(st *state) {
		for id, snap := range st.bookings {
			if at, ok := match(snap); ok && snap.DeletedAt == nil {
				found = append(found, candidate{id: id, at: at})
			}
		}
	})
	slices.SortFunc(found, func(a, b candidate) int { return a.at.Compare(b.at) })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	ids := make([]uuid.UUID, len(found))
	for i, c := range found {
		ids[i] = c.id
	}
	return ids
}
