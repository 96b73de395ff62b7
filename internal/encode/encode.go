// Package encode carries the re-encoding settings applied whenever a pass
// cannot stream-copy.
package encode

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Settings describes the container and codecs for one output format.
type Settings struct {
	VideoCodec      string
	AudioCodec      string
	PixelFormat     string
	Preset          string
	CRF             int
	ContainerFormat string
	FileExtension   string
	FastStart       bool
}

var formatPresets = map[string]Settings{
	"mp4": {
		VideoCodec:      "libx264",
		AudioCodec:      "aac",
		PixelFormat:     "yuv420p",
		Preset:          "fast",
		CRF:             18,
		ContainerFormat: "mp4",
		FileExtension:   ".mp4",
		FastStart:       true,
	},
	"webm": {
		VideoCodec:      "libvpx-vp9",
		AudioCodec:      "libopus",
		PixelFormat:     "yuv420p",
		CRF:             15,
		ContainerFormat: "webm",
		FileExtension:   ".webm",
	},
}

// ForOutput picks the settings matching an output path's extension,
// defaulting to mp4 for unknown extensions.
func ForOutput(outputPath string) Settings {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
	if s, ok := formatPresets[ext]; ok {
		return s
	}
	return formatPresets["mp4"]
}

// Args renders the settings as engine output arguments.
func (s Settings) Args() []string {
	args := []string{
		"-c:v", s.VideoCodec,
		"-c:a", s.AudioCodec,
		"-pix_fmt", s.PixelFormat,
		"-crf", fmt.Sprintf("%d", s.CRF),
	}
	if s.Preset != "" {
		args = append(args, "-preset", s.Preset)
	}
	if s.FastStart {
		args = append(args, "-movflags", "+faststart")
	}
	return args
}
