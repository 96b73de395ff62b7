// Package probe reads video metadata through ffprobe for callers that do
// not supply it themselves. The planner core never probes; this is a
// collaborator convenience for the CLI.
package probe

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/clipforge/clipforge/pkg/types"
)

const defaultFPS = 30

// VideoInfo probes a media file and returns its dimensions, duration and
// frame rate.
func VideoInfo(inputPath string) (*types.VideoInfo, error) {
	raw, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "error probing video")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s := stream.(map[string]interface{})
		if s["codec_type"].(string) == "video" {
			videoStream = s
			break
		}
	}
	if videoStream == nil {
		return nil, errors.New("no video stream found")
	}

	fps := parseFrameRate(videoStream)

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	// If still no duration found, calculate from frame count and rate
	if duration == 0 && fps > 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				duration = frames / fps
			}
		}
	}

	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	if fps == 0 {
		fps = defaultFPS
	}

	return &types.VideoInfo{
		Width:      int(videoStream["width"].(float64)),
		Height:     int(videoStream["height"].(float64)),
		DurationMs: duration * 1000,
		FPS:        fps,
	}, nil
}

// parseFrameRate reads the r_frame_rate fraction (e.g. "30000/1001").
func parseFrameRate(videoStream map[string]interface{}) float64 {
	rFrameRate, ok := videoStream["r_frame_rate"].(string)
	if !ok {
		return 0
	}
	nums := strings.Split(rFrameRate, "/")
	if len(nums) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}
