package tier

// Tier is a reward tier derived from a contribution count.
type Tier uint8

const (
	None Tier = iota
	Bronze
	Silver
	Gold
)

func (self Tier) String() string {
	switch self {
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	default:
		return "none"
	}
}

// Lookup maps a contribution count onto a tier using the given thresholds.
// Counts below the bronze threshold earn no tier.
func Lookup(count, bronze, silver, gold uint64) Tier {
	switch {
	case count >= gold:
		return Gold
	case count >= silver:
		return Silver
	case count >= bronze:
		return Bronze
	default:
		return None
	}
}
