package types

// StrategyConfig describes one trading strategy selected for a run.
// The engine treats Indicators and TrainingPeriod as opaque metadata;
// only Symbols and StopLossPct drive the simulation.
type StrategyConfig struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Indicators     []string `json:"indicators"`
	Symbols        []string `json:"symbols"`
	StopLossPct    float64  `json:"stopLossPct"` // percent, must be > 0
	TrainingPeriod string   `json:"trainingPeriod"`
}
