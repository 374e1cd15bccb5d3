package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/newswatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2024, 3, 31, 20, 30, 5, 0, time.UTC)

	changed := FormatEntry(models.ChangeRecord{
		Timestamp:  ts,
		TargetName: "Alpha",
		Outcome:    models.OutcomeChanged,
		DiffText:   "--- before\n+++ after\n@@ -0,0 +1 @@\n+Hello",
	})
	assert.Equal(t, "[2024-04-01 05:30:05] Alpha\n--- before\n+++ after\n@@ -0,0 +1 @@\n+Hello\n\n", changed)

	unchanged := FormatEntry(models.ChangeRecord{
		Timestamp:  ts,
		TargetName: "Alpha",
		Outcome:    models.OutcomeUnchanged,
	})
	assert.Equal(t, "[2024-04-01 05:30:05] Alpha (no change)\n\n", unchanged)
}

func TestChangeLog_AppendKeepsPriorEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "diff_history.log")
	clock := fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	changeLog := NewChangeLog(path, clock, zerolog.Nop())

	require.NoError(t, changeLog.Append(models.ChangeRecord{TargetName: "Alpha", Outcome: models.OutcomeChanged, DiffText: "+Hello"}))
	require.NoError(t, changeLog.Append(models.ChangeRecord{TargetName: "Alpha", Outcome: models.OutcomeUnchanged}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2024-01-01 09:00:00] Alpha\n+Hello\n\n"+
			"[2024-01-01 09:00:00] Alpha (no change)\n\n",
		string(data))
}

func TestChangeLog_ErrorOutcomeNotWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff_history.log")
	changeLog := NewChangeLog(path, nil, zerolog.Nop())

	require.NoError(t, changeLog.Append(models.ChangeRecord{TargetName: "Alpha", Outcome: models.OutcomeError}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestChangeLog_ExplicitTimestampWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff_history.log")
	changeLog := NewChangeLog(path, fixedClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)), zerolog.Nop())

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	require.NoError(t, changeLog.Append(models.ChangeRecord{Timestamp: ts, TargetName: "Beta", Outcome: models.OutcomeUnchanged}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-06-01 19:00:00] Beta (no change)\n\n", string(data))
}
