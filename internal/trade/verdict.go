package trade

// Verdict is the fairness call for a trade, from the sender's point of view
type Verdict int

const (
	Even Verdict = iota
	FavorsSender
	FavorsPartner
)

func (v Verdict) String() string {
	switch v {
	case FavorsSender:
		return "favors sender"
	case FavorsPartner:
		return "favors partner"
	default:
		return "even"
	}
}

// FairBounds returns the even band for a margin
func FairBounds(margin float64) (lower, upper float64) {
	return 0.5 - margin/2, 0.5 + margin/2
}

// Classify calls a position: above the band the sender receives more value
// than it gives up, below it the partner does.
func Classify(position, margin float64) Verdict {
	lower, upper := FairBounds(margin)
	switch {
	case position > upper:
		return FavorsSender
	case position < lower:
		return FavorsPartner
	default:
		return Even
	}
}
