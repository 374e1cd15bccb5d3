package notifier

import (
	"fmt"

	"github.com/aleister1102/newswatch/internal/differ"
	"github.com/aleister1102/newswatch/internal/models"
)

const truncationSuffix = "..."

// FormatMessage renders the notification for one changed target. The body is
// cut to maxLength runes; a maxLength <= 0 disables the cut.
func FormatMessage(targetName, diffText string, stats differ.DiffStatistics, maxLength int) models.NotificationMessage {
	body := fmt.Sprintf("Update detected: %s\n+%d/-%d lines\n\n%s",
		targetName, stats.LinesAdded, stats.LinesDeleted, diffText)

	return models.NotificationMessage{
		TargetName: targetName,
		Body:       truncateRunes(body, maxLength),
	}
}

// truncateRunes counts characters, not bytes, so multi-byte text is never split.
func truncateRunes(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= len(truncationSuffix) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(truncationSuffix)]) + truncationSuffix
}
