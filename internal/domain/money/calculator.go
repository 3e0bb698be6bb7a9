package money

import "errors"

// BasisPoints expresses a rate as parts per ten thousand (1000 = 10%).
type BasisPoints int64

const fullRate BasisPoints = 10000

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidRate    = errors.New("rate must be between 0 and 10000 basis points")
)

// Rates is the pair of platform rates applied to a reservation total.
type Rates struct {
	Advance    BasisPoints
	Commission BasisPoints
}

func (r Rates) Validate() error {
	if !r.Advance.valid() || !r.Commission.valid() {
		return ErrInvalidRate
	}
	return nil
}

func (b BasisPoints) valid() bool {
	return b >= 0 && b <= fullRate
}

// Breakdown is the full split of a reservation total.
type Breakdown struct {
	Total       int64
	Advance     int64
	Commission  int64
	OwnerCredit int64
	Remaining   int64
}

// CeilRate returns ceil(amount * rate) in integer arithmetic.
func CeilRate(amount int64, rate BasisPoints) int64 {
	p := amount * int64(rate)
	q := p / int64(fullRate)
	if p%int64(fullRate) > 0 {
		q++
	}
	return q
}

// FloorRate returns floor(amount * rate) in integer arithmetic.
func FloorRate(amount int64, rate BasisPoints) int64 {
	return amount * int64(rate) / int64(fullRate)
}

func Advance(total int64, rate BasisPoints) int64 {
	return CeilRate(total, rate)
}

// Commission never exceeds the advance it is taken from.
func Commission(total int64, rate BasisPoints, advance int64) int64 {
	return min(CeilRate(total, rate), advance)
}

func OwnerCredit(advance, commission int64) int64 {
	return advance - commission
}

func Remaining(total, advance int64) int64 {
	return total - advance
}

func Split(total int64, rates Rates) (Breakdown, error) {
	if total < 0 {
		return Breakdown{}, ErrNegativeAmount
	}
	if err := rates.Validate(); err != nil {
		return Breakdown{}, err
	}

	advance := Advance(total, rates.Advance)
	commission := Commission(total, rates.Commission, advance)

	return Breakdown{
		Total:       total,
		Advance:     advance,
		Commission:  commission,
		OwnerCredit: OwnerCredit(advance, commission),
		Remaining:   Remaining(total, advance),
	}, nil
}
