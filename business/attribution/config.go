package attribution

type Config struct {
	// tracking-event replay window
	LookbackDays       int
	TrackingEventLimit int

	// clicks older than this are presumed unrelated browsing
	ClickWindowMinutes int

	// soft-signal upsert written when an order with impressions converts
	// without any attributable product
	SoftCoIncrement      float64
	SoftOverallIncrement float64
	SoftScoreCap         float64
}

const (
	defaultLookbackDays       = 7
	defaultTrackingEventLimit = 500
	defaultClickWindowMinutes = 60

	defaultSoftCoIncrement      = 0.1
	defaultSoftOverallIncrement = 0.05
	defaultSoftScoreCap         = 1.0
)

func DefaultConfig() Config {
	return Config{
		LookbackDays:         defaultLookbackDays,
		TrackingEventLimit:   defaultTrackingEventLimit,
		ClickWindowMinutes:   defaultClickWindowMinutes,
		SoftCoIncrement:      defaultSoftCoIncrement,
		SoftOverallIncrement: defaultSoftOverallIncrement,
		SoftScoreCap:         defaultSoftScoreCap,
	}
}
