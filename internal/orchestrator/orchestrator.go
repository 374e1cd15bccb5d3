package orchestrator

import (
	"context"
	"errors"

	"github.com/aleister1102/newswatch/internal/differ"
	"github.com/aleister1102/newswatch/internal/extractor"
	"github.com/aleister1102/newswatch/internal/models"
	"github.com/rs/zerolog"
)

// ContentExtractor produces the normalized text of a target.
type ContentExtractor interface {
	Extract(ctx context.Context, target models.Target) (string, error)
}

// SnapshotStore persists the last observed text per target.
type SnapshotStore interface {
	Read(targetName string) (string, error)
	Write(targetName, text string) error
}

// ChangeLog receives one record per target that produced content.
type ChangeLog interface {
	Append(record models.ChangeRecord) error
}

// ContentDiffer renders and measures the change between two snapshots.
type ContentDiffer interface {
	Diff(previous, current string) string
	Stats(previous, current string) differ.DiffStatistics
}

// Notifier alerts about one changed target.
type Notifier interface {
	Notify(ctx context.Context, targetName, diffText string, stats differ.DiffStatistics) error
}

// Dependencies groups the collaborators of an Orchestrator.
type Dependencies struct {
	Extractor ContentExtractor
	Snapshots SnapshotStore
	ChangeLog ChangeLog
	Differ    ContentDiffer
	Notifier  Notifier
}

// Orchestrator drives one run over the configured targets.
type Orchestrator struct {
	deps   Dependencies
	logger zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(deps Dependencies, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		deps:   deps,
		logger: logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// Run processes targets one at a time in the given order. A failing target
// never stops the run; cancelling ctx lets the current target finish and
// stops the run before the next one.
func (o *Orchestrator) Run(ctx context.Context, targets []models.Target) models.RunSummary {
	var summary models.RunSummary

	o.logger.Info().Int("target_count", len(targets)).Msg("Starting run")

	for i, target := range targets {
		if ctx.Err() != nil {
			o.logger.Warn().
				Err(ctx.Err()).
				Int("remaining", len(targets)-i).
				Msg("Run cancelled, remaining targets not processed")
			break
		}

		// Cancellation only takes effect between targets.
		result := o.processTarget(context.WithoutCancel(ctx), target)
		summary.Record(target.Name, result.outcome)
		if result.notifyFailed {
			summary.NotifyFailed++
		}
	}

	o.logger.Info().
		Int("total", summary.Total).
		Int("changed", summary.Changed).
		Int("unchanged", summary.Unchanged).
		Int("skipped", summary.Skipped).
		Int("notify_failed", summary.NotifyFailed).
		Strs("changed_targets", summary.ChangedNames).
		Msg("Run complete")

	return summary
}

type targetResult struct {
	outcome      models.Outcome
	notifyFailed bool
}

func (o *Orchestrator) processTarget(ctx context.Context, target models.Target) targetResult {
	log := o.logger.With().Str("target", target.Name).Logger()

	current, err := o.deps.Extractor.Extract(ctx, target)
	if err != nil {
		if errors.Is(err, extractor.ErrNotFound) {
			log.Warn().Err(err).Msg("Content not found, skipping target")
		} else {
			log.Error().Err(err).Msg("Extraction failed, skipping target")
		}
		return targetResult{outcome: models.OutcomeError}
	}

	previous, err := o.deps.Snapshots.Read(target.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read previous snapshot, skipping target")
		return targetResult{outcome: models.OutcomeError}
	}

	if current == previous {
		log.Info().Msg("No change")
		o.appendRecord(log, models.ChangeRecord{TargetName: target.Name, Outcome: models.OutcomeUnchanged})
		return targetResult{outcome: models.OutcomeUnchanged}
	}

	diffText := o.deps.Differ.Diff(previous, current)
	stats := o.deps.Differ.Stats(previous, current)

	// Nothing downstream happens unless the new state is committed.
	if err := o.deps.Snapshots.Write(target.Name, current); err != nil {
		log.Error().Err(err).Msg("Failed to write snapshot, change not recorded")
		return targetResult{outcome: models.OutcomeError}
	}

	log.Info().
		Int("lines_added", stats.LinesAdded).
		Int("lines_deleted", stats.LinesDeleted).
		Bool("first_observation", previous == "").
		Msg("Change detected")

	o.appendRecord(log, models.ChangeRecord{TargetName: target.Name, Outcome: models.OutcomeChanged, DiffText: diffText})

	result := targetResult{outcome: models.OutcomeChanged}
	if err := o.deps.Notifier.Notify(ctx, target.Name, diffText, stats); err != nil {
		log.Error().Err(err).Msg("Notification failed")
		result.notifyFailed = true
	}
	return result
}

// appendRecord logs a change log failure instead of returning it; the
// snapshot is already committed at this point.
func (o *Orchestrator) appendRecord(log zerolog.Logger, record models.ChangeRecord) {
	if err := o.deps.ChangeLog.Append(record); err != nil {
		log.Error().Err(err).Str("outcome", string(record.Outcome)).Msg("Failed to append change log entry")
	}
}
