package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"floorplanner/internal/planner/export"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage lays out exported files under a root directory.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Root() string {
	return s.root
}

// ExportPath names an export created at the given time.
func (s *FileStorage) ExportPath(at time.Time, f export.Format) string {
	return filepath.Join(s.root, export.FileName(at, f))
}

func (s *FileStorage) ScenePath(at time.Time) string {
	return filepath.Join(s.root, fmt.Sprintf("floor-plan-%d.scene.json", at.UnixMilli()))
}

func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(target string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	return nil
}
