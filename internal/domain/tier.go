package domain

// Tier is the danger classification of a point inside a zone.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierSafe    Tier = "safe"
	TierOutside Tier = "outside"
)

// Rank orders tiers from most to least dangerous: high < medium < safe < outside.
func (t Tier) Rank() int {
	switch t {
	case TierHigh:
		return 0
	case TierMedium:
		return 1
	case TierSafe:
		return 2
	default:
		return 3
	}
}
