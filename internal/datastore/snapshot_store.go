package datastore

import (
	"errors"
	"path/filepath"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/urlhandler"
	"github.com/rs/zerolog"
)

const (
	snapshotFileExt = ".txt"
	// maxSnapshotSize guards against reading something that is not a snapshot.
	maxSnapshotSize = 64 * 1024 * 1024
)

// SnapshotStore keeps the last observed text of each target as one UTF-8 file
// per target under a base directory.
type SnapshotStore struct {
	baseDir     string
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewSnapshotStore creates a store rooted at baseDir. The directory is created
// on first write.
func NewSnapshotStore(baseDir string, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		baseDir:     baseDir,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("component", "SnapshotStore").Logger(),
	}
}

// PathFor returns the snapshot file of targetName.
func (s *SnapshotStore) PathFor(targetName string) string {
	return filepath.Join(s.baseDir, urlhandler.SanitizeKey(targetName)+snapshotFileExt)
}

// Read returns the stored snapshot, or "" if none exists yet.
func (s *SnapshotStore) Read(targetName string) (string, error) {
	path := s.PathFor(targetName)

	data, err := s.fileManager.ReadFile(path, maxSnapshotSize)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug().Str("target", targetName).Str("path", path).Msg("No previous snapshot")
			return "", nil
		}
		return "", common.WrapError(err, "failed to read snapshot for target '"+targetName+"'")
	}
	return string(data), nil
}

// Write replaces the snapshot of targetName. The previous file stays intact
// if the write fails part way.
func (s *SnapshotStore) Write(targetName, text string) error {
	path := s.PathFor(targetName)

	if err := s.fileManager.WriteFileAtomic(path, []byte(text), 0644); err != nil {
		s.logger.Error().Err(err).Str("target", targetName).Str("path", path).Msg("Failed to write snapshot")
		return common.WrapError(err, "failed to write snapshot for target '"+targetName+"'")
	}

	s.logger.Debug().Str("target", targetName).Str("path", path).Int("bytes", len(text)).Msg("Snapshot written")
	return nil
}
