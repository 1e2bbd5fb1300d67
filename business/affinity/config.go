package affinity

type Config struct {
	// trailing purchase-history window used by the matrix builder
	WindowDays int

	// weights of the overall score blend
	JaccardWeight   float64
	FrequencyWeight float64

	// inclusion gate for persisted similarity rows
	MinOverallScore float64
	MinCoPurchases  int

	// time-decayed association read path
	HalfLifeDays    float64
	MinConfidence   float64
	MinConfidenceCo float64
	MinLift         float64
	MinLiftCo       float64

	// persistence
	InsertBatchSize int
}

const (
	defaultWindowDays      = 90
	defaultJaccardWeight   = 0.6
	defaultFrequencyWeight = 0.4
	defaultMinOverallScore = 0.1
	defaultMinCoPurchases  = 2
	defaultHalfLifeDays    = 90.0
	defaultMinConfidence   = 0.3
	defaultMinConfidenceCo = 3.0
	defaultMinLift         = 1.2
	defaultMinLiftCo       = 2.5
	defaultInsertBatchSize = 1000
)

func DefaultConfig() Config {
	return Config{
		WindowDays:      defaultWindowDays,
		JaccardWeight:   defaultJaccardWeight,
		FrequencyWeight: defaultFrequencyWeight,
		MinOverallScore: defaultMinOverallScore,
		MinCoPurchases:  defaultMinCoPurchases,
		HalfLifeDays:    defaultHalfLifeDays,
		MinConfidence:   defaultMinConfidence,
		MinConfidenceCo: defaultMinConfidenceCo,
		MinLift:         defaultMinLift,
		MinLiftCo:       defaultMinLiftCo,
		InsertBatchSize: defaultInsertBatchSize,
	}
}
