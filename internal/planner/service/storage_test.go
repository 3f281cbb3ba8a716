package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"floorplanner/internal/planner/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoragePaths(t *testing.T) {
	s := NewFileStorage("out")
	at := time.UnixMilli(1700000000000)

	assert.Equal(t, filepath.Join("out", "floor-plan-1700000000000.svg"), s.ExportPath(at, export.FormatSVG))
	assert.Equal(t, filepath.Join("out", "floor-plan-1700000000000.scene.json"), s.ScenePath(at))
}

func TestFileStorageSaveCreatesDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "exports")
	s := NewFileStorage(root)
	target := s.ExportPath(time.Now(), export.FormatJSON)

	require.NoError(t, s.SaveFile(target, []byte(`{}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
