package availability

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"

	"github.com/google/uuid"
)

type OccupantKind string

const (
	OccupantReservation OccupantKind = "reservation"
	OccupantManualBlock OccupantKind = "manual_block"
)

// Occupant is anything holding exclusivity over [Start, End) in a conflict
// group. End already includes any buffer.
type Occupant struct {
	Kind  OccupantKind
	ID    uuid.UUID
	Start time.Time
	End   time.Time
}

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
	SlotDisabled  SlotStatus = "disabled"
	SlotBuffer    SlotStatus = "buffer"
)

type Slot struct {
	Start           time.Time
	End             time.Time
	BlockedEnd      time.Time
	DurationMinutes int
	Status          SlotStatus
	Price           int64
	Peak            bool
}

type Grid struct {
	ConflictGroupID  uuid.UUID
	PricingProfileID uuid.UUID
	Date             time.Time
	Slots            []Slot
}

// ComputeGrid lays out every candidate start across the profile's operating
// hours for each allowed duration and classifies it against the occupants.
func ComputeGrid(profile pricing.Profile, day time.Time, occupants []Occupant, now time.Time) []Slot {
	open, closing := profile.OperatingHours(day)
	step := time.Duration(profile.SlotIntervalMinutes) * time.Minute
	earliest := now.Add(profile.LeadTime())

	var slots []Slot
	for start := open; start.Before(closing); start = start.Add(step) {
		for _, minutes := range profile.AllowedDurations {
			end := start.Add(time.Duration(minutes) * time.Minute)
			slot := Slot{
				Start:           start,
				End:             end,
				BlockedEnd:      end.Add(profile.Buffer()),
				DurationMinutes: minutes,
			}
			slot.Status = classify(slot, occupants, closing, earliest)
			if price, peak, err := profile.PriceFor(start, minutes); err == nil {
				slot.Price = price
				slot.Peak = peak
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// classify applies booked > blocked > disabled > buffer > available.
func classify(s Slot, occupants []Occupant, closing, earliest time.Time) SlotStatus {
	var blocked, bufferOnly bool
	for _, o := range occupants {
		if booking.Overlaps(s.Start, s.End, o.Start, o.End) {
			if o.Kind == OccupantReservation {
				return SlotBooked
			}
			blocked = true
			continue
		}
		if booking.Overlaps(s.End, s.BlockedEnd, o.Start, o.End) {
			bufferOnly = true
		}
	}

	switch {
	case blocked:
		return SlotBlocked
	case s.Start.Before(earliest) || s.End.After(closing):
		return SlotDisabled
	case bufferOnly:
		return SlotBuffer
	default:
		return SlotAvailable
	}
}
