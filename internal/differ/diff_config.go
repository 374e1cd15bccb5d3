package differ

const (
	DefaultFromLabel    = "before"
	DefaultToLabel      = "after"
	DefaultContextLines = 3
)

// DiffConfig holds configuration for content diffing
type DiffConfig struct {
	FromLabel    string
	ToLabel      string
	ContextLines int
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		FromLabel:    DefaultFromLabel,
		ToLabel:      DefaultToLabel,
		ContextLines: DefaultContextLines,
	}
}
