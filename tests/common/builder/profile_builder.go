//go:build unit || e2e

package builder

import (
	"maps"
	"slices"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"

	"github.com/google/uuid"
)

type ProfileBuilder struct {
	Profile pricing.Profile
}

func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		Profile: pricing.Profile{
			ID:                  uuid.New(),
			Active:              true,
			SlotIntervalMinutes: 30,
			AllowedDurations:    []int{60, 90, 120},
			BufferMinutes:       10,
			LeadTimeMinutes:     60,
			OpenMinute:          6 * 60,
			CloseMinute:         23 * 60,
			Location:            time.UTC,
			RegularPrices:       map[int]int64{60: 1000, 90: 1400, 120: 1800},
			PeakPrices:          map[int]int64{60: 1500, 90: 2100, 120: 2700},
			PeakWindows:         []pricing.Window{{StartMinute: 18 * 60, EndMinute: 22 * 60}},
			Rates:               money.Rates{Advance: 1000, Commission: 500},
		},
	}
}

func (b *ProfileBuilder) With(mutate func(*ProfileBuilder)) *ProfileBuilder {
	mutate(b)
	return b
}

// Build returns a copy so later mutations of the builder don't leak.
func (b *ProfileBuilder) Build() pricing.Profile {
	p := b.Profile
	p.AllowedDurations = slices.Clone(p.AllowedDurations)
	p.RegularPrices = maps.Clone(p.RegularPrices)
	p.PeakPrices = maps.Clone(p.PeakPrices)
	p.PeakWindows = slices.Clone(p.PeakWindows)
	return p
}
