package differ

import (
	"strings"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
)

// ContentDiffer produces the unified diff and change statistics between two
// snapshots
type ContentDiffer struct {
	config          DiffConfig
	processor       *DiffProcessor
	statsCalculator *DiffStatsCalculator
	logger          zerolog.Logger
}

// ContentDifferBuilder provides a fluent interface for creating ContentDiffer
type ContentDifferBuilder struct {
	diffCfg DiffConfig
	logger  zerolog.Logger
}

// NewContentDifferBuilder creates a new builder
func NewContentDifferBuilder(logger zerolog.Logger) *ContentDifferBuilder {
	return &ContentDifferBuilder{
		diffCfg: DefaultDiffConfig(),
		logger:  logger,
	}
}

// WithDiffConfig sets the diff configuration
func (b *ContentDifferBuilder) WithDiffConfig(cfg DiffConfig) *ContentDifferBuilder {
	b.diffCfg = cfg
	return b
}

// Build creates a new ContentDiffer instance
func (b *ContentDifferBuilder) Build() (*ContentDiffer, error) {
	if b.diffCfg.ContextLines < 0 {
		return nil, common.NewValidationError("context_lines", b.diffCfg.ContextLines, "context lines cannot be negative")
	}

	return &ContentDiffer{
		config:          b.diffCfg,
		processor:       NewDiffProcessor(),
		statsCalculator: NewDiffStatsCalculator(),
		logger:          b.logger.With().Str("component", "ContentDiffer").Logger(),
	}, nil
}

// NewContentDiffer creates a ContentDiffer with the default labels and context
func NewContentDiffer(logger zerolog.Logger) *ContentDiffer {
	differ, _ := NewContentDifferBuilder(logger).Build()
	return differ
}

// Diff returns the unified diff turning previous into current, or "" when
// they are equal. An empty previous text has no lines, so every line of
// current shows as added.
func (cd *ContentDiffer) Diff(previous, current string) string {
	if previous == current {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        splitLines(previous),
		B:        splitLines(current),
		FromFile: cd.config.FromLabel,
		ToFile:   cd.config.ToLabel,
		Context:  cd.config.ContextLines,
		Eol:      "\n",
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// Writes go to an in-memory buffer and cannot fail.
		cd.logger.Error().Err(err).Msg("Failed to render unified diff")
		return ""
	}
	return strings.TrimSuffix(text, "\n")
}

// Stats counts the lines added and deleted between previous and current
func (cd *ContentDiffer) Stats(previous, current string) DiffStatistics {
	diffs := cd.processor.ProcessLineDiff(previous, current)
	return cd.statsCalculator.CalculateStats(diffs)
}

// splitLines splits on "\n" and gives each line its own terminator for the
// diff writer. A single trailing newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}
