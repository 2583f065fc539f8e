// Package risk encodes the guard rails applied to position sizing.
package risk

// Band bounds how much a single trade may stake.
type Band struct {
	MinStake float64
	MaxStake float64
}

// DefaultBand is the stake safety band applied when config leaves it unset.
func DefaultBand() Band {
	return Band{MinStake: 0.5, MaxStake: 8.0}
}

// Clamp forces a stake into the band.
func (b Band) Clamp(stake float64) float64 {
	if stake < b.MinStake {
		return b.MinStake
	}
	if stake > b.MaxStake {
		return b.MaxStake
	}
	return stake
}

// Allow reports whether the balance covers the stake.
func (b Band) Allow(stake, balance float64) bool {
	return stake <= balance
}
