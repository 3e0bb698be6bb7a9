package pricing

import (
	"errors"
	"slices"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

var (
	ErrProfileInactive    = errors.New("pricing profile is not active")
	ErrInvalidDuration    = errors.New("duration is not offered by the pricing profile")
	ErrPriceNotConfigured = errors.New("no price configured for duration")
	ErrInvalidProfile     = errors.New("invalid pricing profile")
)

// Window is a daily range in minutes since local midnight, half-open.
type Window struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// Profile describes how one bookable configuration is sold.
type Profile struct {
	ID                  uuid.UUID
	Active              bool
	SlotIntervalMinutes int
	AllowedDurations    []int
	BufferMinutes       int
	LeadTimeMinutes     int
	OpenMinute          int
	CloseMinute         int
	Location            *time.Location
	RegularPrices       map[int]int64
	PeakPrices          map[int]int64
	PeakWindows         []Window
	Rates               money.Rates
}

func (p Profile) Validate() error {
	if p.SlotIntervalMinutes <= 0 || len(p.AllowedDurations) == 0 {
		return ErrInvalidProfile
	}
	if p.OpenMinute < 0 || p.CloseMinute > minutesPerDay || p.OpenMinute >= p.CloseMinute {
		return ErrInvalidProfile
	}
	if p.BufferMinutes < 0 || p.LeadTimeMinutes < 0 {
		return ErrInvalidProfile
	}
	return p.Rates.Validate()
}

// AllowsDuration is an exact membership test, not a range check.
func (p Profile) AllowsDuration(minutes int) bool {
	return slices.Contains(p.AllowedDurations, minutes)
}

func (p Profile) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

func (p Profile) LeadTime() time.Duration {
	return time.Duration(p.LeadTimeMinutes) * time.Minute
}

func (p Profile) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// DayStart returns local midnight of the day containing t.
func (p Profile) DayStart(t time.Time) time.Time {
	local := t.In(p.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location())
}

func (p Profile) OperatingHours(day time.Time) (open, close time.Time) {
	start := p.DayStart(day)
	return start.Add(time.Duration(p.OpenMinute) * time.Minute),
		start.Add(time.Duration(p.CloseMinute) * time.Minute)
}

func (p Profile) IsPeak(start, end time.Time) bool {
	day := p.DayStart(start)
	for _, w := range p.PeakWindows {
		ws := day.Add(time.Duration(w.StartMinute) * time.Minute)
		we := day.Add(time.Duration(w.EndMinute) * time.Minute)
		if booking.Overlaps(start, end, ws, we) {
			return true
		}
	}
	return false
}

// PriceFor selects the peak table when the slot touches any peak window.
func (p Profile) PriceFor(start time.Time, durationMinutes int) (int64, bool, error) {
	if !p.AllowsDuration(durationMinutes) {
		return 0, false, ErrInvalidDuration
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if p.IsPeak(start, end) {
		if price, ok := p.PeakPrices[durationMinutes]; ok {
			return price, true, nil
		}
	}

	price, ok := p.RegularPrices[durationMinutes]
	if !ok {
		return 0, false, ErrPriceNotConfigured
	}
	return price, false, nil
}
