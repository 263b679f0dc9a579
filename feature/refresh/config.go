package refresh

// Config holds configuration for the metadata refresh.
type Config struct {
	// IntervalHours schedules a refresh inside the server. Zero disables it.
	IntervalHours int `mapstructure:"interval_hours" default:"0"`
	// BatchSize is the number of catalogue rows read per page.
	BatchSize int `mapstructure:"batch_size" default:"100"`
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return 100
	}
	return c.BatchSize
}
