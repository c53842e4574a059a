package types

import "time"

type Granularity string

const (
	Hourly    Granularity = "60"
	FourHours Granularity = "240"
	Daily     Granularity = "D"
	Weekly    Granularity = "W"
)

var GranularityToDuration = map[Granularity]time.Duration{
	Hourly:    time.Hour,
	FourHours: time.Hour * 4,
	Daily:     time.Hour * 24,
	Weekly:    time.Hour * 24 * 7,
}

var ConvertGranularity = map[string]Granularity{
	"60":  Hourly,
	"240": FourHours,
	"D":   Daily,
	"W":   Weekly,
}

// BarsPerYear is the annualization factor for the sampling granularity:
// 252 trading days for daily bars, scaled up for intraday granularities.
func (g Granularity) BarsPerYear() int {
	switch g {
	case Hourly:
		return 252 * 7
	case FourHours:
		return 252 * 2
	case Weekly:
		return 52
	default:
		return 252
	}
}
