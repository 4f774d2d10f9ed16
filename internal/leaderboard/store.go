package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"scoreboard/internal/logger"
	"scoreboard/internal/monitoring"
)

type Store interface {
	// Load never fails: unreadable state reads as an empty board.
	Load() Board
	// Save normalizes and persists the board.
	Save(Board) error
	Exists() bool
}

// FileStore keeps the board as a pretty-printed JSON array in one file.
// Writes go to a temp file in the same directory and are renamed over the
// target, so readers see either the old or the new file, never a partial one.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileStore) Load() Board {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.loadFailed(err)
		}
		return Board{}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Board{}
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		s.loadFailed(err)
		return Board{}
	}
	if board == nil {
		return Board{}
	}
	return board
}

func (s *FileStore) loadFailed(err error) {
	monitoring.StoreErrors.WithLabelValues("load").Inc()
	logger.Log.Error("load leaderboard", zap.String("path", s.path), zap.Error(err))
}

func (s *FileStore) Save(board Board) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Normalize(board)); err != nil {
		monitoring.StoreErrors.WithLabelValues("save").Inc()
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		monitoring.StoreErrors.WithLabelValues("save").Inc()
		return err
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
