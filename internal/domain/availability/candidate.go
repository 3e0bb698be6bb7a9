package availability

import (
	"errors"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
)

var (
	ErrInsufficientLeadTime  = errors.New("start time does not meet the lead time")
	ErrOutsideOperatingHours = errors.New("slot falls outside operating hours")
)

// ValidateCandidate checks a requested slot against the profile without
// touching storage.
func ValidateCandidate(profile pricing.Profile, start time.Time, durationMinutes int, now time.Time) error {
	if !profile.Active {
		return pricing.ErrProfileInactive
	}
	if !profile.AllowsDuration(durationMinutes) {
		return pricing.ErrInvalidDuration
	}
	if start.Before(now.Add(profile.LeadTime())) {
		return ErrInsufficientLeadTime
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	open, closing := profile.OperatingHours(start)
	if start.Before(open) || end.After(closing) {
		return ErrOutsideOperatingHours
	}
	return nil
}
