package engine

import "math"

// leverageFor maps a trade's risk/reward ratio to an integer leverage
// multiplier. RR is clamped to [2.5, 5.0] and leverage interpolates linearly
// from 2 (at rr=2.5) to maxLeverage (at rr=5.0), rounded to nearest. Total
// function: guarantees 2 <= result <= max(maxLeverage, 2).
func leverageFor(rr float64, maxLeverage int) int {
	if maxLeverage <= 2 {
		return 2
	}
	rr = clampRR(rr)

	t := (rr - minTargetRR) / (maxTargetRR - minTargetRR)
	lev := int(math.Round(2 + t*float64(maxLeverage-2)))

	if lev < 2 {
		return 2
	}
	if lev > maxLeverage {
		return maxLeverage
	}
	return lev
}
