package datastore

import (
	"strings"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/models"
	"github.com/rs/zerolog"
)

// UnchangedMarker follows the header of an unchanged entry.
const UnchangedMarker = " (no change)"

// ChangeLog appends one human-readable entry per target outcome to a text
// file. The file is opened and closed for every entry.
type ChangeLog struct {
	path        string
	clock       common.Clock
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewChangeLog creates a change log writing to path. A nil clock uses the
// current time in JST.
func NewChangeLog(path string, clock common.Clock, logger zerolog.Logger) *ChangeLog {
	if clock == nil {
		clock = common.FixedZoneClock(common.JST)
	}
	return &ChangeLog{
		path:        path,
		clock:       clock,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("component", "ChangeLog").Logger(),
	}
}

// Append writes record to the log. Error outcomes are not persisted.
func (cl *ChangeLog) Append(record models.ChangeRecord) error {
	if record.Outcome == models.OutcomeError {
		cl.logger.Debug().Str("target", record.TargetName).Msg("Error outcome not written to change log")
		return nil
	}

	if record.Timestamp.IsZero() {
		record.Timestamp = cl.clock()
	}

	entry := FormatEntry(record)
	if err := cl.fileManager.AppendFile(cl.path, []byte(entry), 0644); err != nil {
		return common.WrapError(err, "failed to append change log entry for target '"+record.TargetName+"'")
	}

	cl.logger.Debug().Str("target", record.TargetName).Str("outcome", string(record.Outcome)).Msg("Change log entry appended")
	return nil
}

// FormatEntry renders record as it appears in the log, trailing blank line included.
func FormatEntry(record models.ChangeRecord) string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(common.FormatDateTime(record.Timestamp, common.JST))
	sb.WriteString("] ")
	sb.WriteString(record.TargetName)

	switch record.Outcome {
	case models.OutcomeChanged:
		sb.WriteString("\n")
		sb.WriteString(record.DiffText)
	case models.OutcomeUnchanged:
		sb.WriteString(UnchangedMarker)
	}

	sb.WriteString("\n\n")
	return sb.String()
}
