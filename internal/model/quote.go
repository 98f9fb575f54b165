package model

import "time"

// TroyOunceGrams is the number of grams in one troy ounce.
const TroyOunceGrams = 31.1035

// Quote is a single gold ask observation, denominated per troy ounce.
type Quote struct {
	Ask       float64
	Source    string
	FetchedAt time.Time
}
