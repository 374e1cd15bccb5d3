package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor computes line-level diffs with diff-match-patch
type DiffProcessor struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffProcessor creates a new diff processor
func NewDiffProcessor() *DiffProcessor {
	return &DiffProcessor{
		dmp: diffmatchpatch.New(),
	}
}

// ProcessLineDiff diffs text1 and text2 line by line. Every non-empty input is
// given a trailing newline so the last line compares like the others.
func (dp *DiffProcessor) ProcessLineDiff(text1, text2 string) []diffmatchpatch.Diff {
	chars1, chars2, lineArray := dp.dmp.DiffLinesToChars(terminate(text1), terminate(text2))
	diffs := dp.dmp.DiffMain(chars1, chars2, false)
	return dp.dmp.DiffCharsToLines(diffs, lineArray)
}

func terminate(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// DiffStatistics holds diff calculation results
type DiffStatistics struct {
	LinesAdded   int
	LinesDeleted int
}

// DiffStatsCalculator calculates statistics from diff results
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats counts added and deleted lines in line-mode diffs
func (dsc *DiffStatsCalculator) CalculateStats(diffs []diffmatchpatch.Diff) DiffStatistics {
	var stats DiffStatistics

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.LinesAdded += strings.Count(diff.Text, "\n")
		case diffmatchpatch.DiffDelete:
			stats.LinesDeleted += strings.Count(diff.Text, "\n")
		}
	}

	return stats
}
