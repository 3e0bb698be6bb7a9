package converter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
)

// ProfileRow holds the pricing_profiles columns that need decoding.
type ProfileRow struct {
	Profile       pricing.Profile
	Durations     []int32
	RegularPrices []byte
	PeakPrices    []byte
	PeakWindows   []byte
	TimeZone      string
}

func ProfileFromRow(r ProfileRow) (*pricing.Profile, error) {
	p := r.Profile

	p.AllowedDurations = make([]int, 0, len(r.Durations))
	for _, d := range r.Durations {
		p.AllowedDurations = append(p.AllowedDurations, int(d))
	}

	var err error
	if p.RegularPrices, err = decodePriceTable(r.RegularPrices); err != nil {
		return nil, err
	}
	if p.PeakPrices, err = decodePriceTable(r.PeakPrices); err != nil {
		return nil, err
	}
	if len(r.PeakWindows) > 0 {
		if err = json.Unmarshal(r.PeakWindows, &p.PeakWindows); err != nil {
			return nil, fmt.Errorf("decode peak windows: %w", err)
		}
	}

	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load facility time zone %q: %w", r.TimeZone, err)
	}
	p.Location = loc

	return &p, nil
}

// Price tables are stored as {"60": 1000, "90": 1400}.
func decodePriceTable(raw []byte) (map[int]int64, error) {
	if len(raw) == 0 {
		return map[int]int64{}, nil
	}
	var byKey map[string]int64
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("decode price table: %w", err)
	}
	out := make(map[int]int64, len(byKey))
	for k, v := range byKey {
		minutes, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("price table key %q: %w", k, err)
		}
		out[minutes] = v
	}
	return out, nil
}
