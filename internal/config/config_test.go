package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clipforge/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"inputPath": "in.mp4",
		"outputPath": "out.mp4",
		"video": {"width": 1920, "height": 1080, "durationMs": 60000, "fps": 30},
		"zoom": [{"id": "z1", "startMs": 1000, "endMs": 3000, "depth": 3, "focusX": 0.5, "focusY": 0.06}],
		"trim": [{"startMs": 5000, "endMs": 10000}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "in.mp4", cfg.InputPath)
	require.NotNil(t, cfg.Video)
	assert.Equal(t, 1920, cfg.Video.Width)
	require.Len(t, cfg.Zoom, 1)
	assert.Equal(t, "z1", cfg.Zoom[0].ID)
	assert.Equal(t, 3, cfg.Zoom[0].Depth)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
inputPath: in.mp4
outputPath: out.mp4
video:
  width: 1280
  height: 720
  durationMs: 30000
  fps: 25
background:
  type: blur
  blurRadius: 20
  padding: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Video.Width)
	require.NotNil(t, cfg.Background)
	assert.Equal(t, types.BackgroundBlur, cfg.Background.Type)
	assert.Equal(t, 10.0, cfg.Background.Padding)
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"inputPath": "in.mp4",
		"outputPath": "out.mp4",
		"trim": [{"startMs": 5000, "endMs": 10000}],
		"annotations": [{"type": "text", "text": "hi", "startMs": 0, "endMs": 1000, "x": 10, "y": 10}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Trim[0].ID)
	assert.NotEmpty(t, cfg.Annotations[0].ID)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{nope`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
