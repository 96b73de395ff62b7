package types

// AnnotationType identifies the kind of drawable annotation.
type AnnotationType string

const (
	AnnotationText  AnnotationType = "text"
	AnnotationArrow AnnotationType = "arrow"
)

// BackgroundType identifies the backdrop kind for compositing.
type BackgroundType string

const (
	BackgroundColor    BackgroundType = "color"
	BackgroundBlur     BackgroundType = "blur"
	BackgroundImage    BackgroundType = "image"
	BackgroundGradient BackgroundType = "gradient"
)

// ZoomRegion marks a time span during which the frame zooms toward a focus
// point. Depth is a discrete magnification level from 1 to 6; focus
// coordinates are normalized to [0,1].
type ZoomRegion struct {
	ID      string  `json:"id" yaml:"id"`
	StartMs float64 `json:"startMs" yaml:"startMs"`
	EndMs   float64 `json:"endMs" yaml:"endMs"`
	Depth   int     `json:"depth" yaml:"depth"`
	FocusX  float64 `json:"focusX" yaml:"focusX"`
	FocusY  float64 `json:"focusY" yaml:"focusY"`
}

// CropRegion is a normalized sub-rectangle of the frame. x+width and
// y+height must not exceed 1 for the resulting filter to be valid.
type CropRegion struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// TrimRegion marks a span to be removed from the clip, not kept.
type TrimRegion struct {
	ID      string  `json:"id" yaml:"id"`
	StartMs float64 `json:"startMs" yaml:"startMs"`
	EndMs   float64 `json:"endMs" yaml:"endMs"`
}

// AnnotationRegion is a text or arrow drawn over the frame between StartMs
// and EndMs. X and Y are percentages of the canvas in [0,100].
type AnnotationRegion struct {
	ID      string         `json:"id" yaml:"id"`
	StartMs float64        `json:"startMs" yaml:"startMs"`
	EndMs   float64        `json:"endMs" yaml:"endMs"`
	Type    AnnotationType `json:"type" yaml:"type"`
	X       float64        `json:"x" yaml:"x"`
	Y       float64        `json:"y" yaml:"y"`

	// Text styling
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize int    `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	BoxColor string `json:"boxColor,omitempty" yaml:"boxColor,omitempty"`

	// Arrow styling
	ArrowDirection string `json:"arrowDirection,omitempty" yaml:"arrowDirection,omitempty"`
	ArrowSize      int    `json:"arrowSize,omitempty" yaml:"arrowSize,omitempty"`
}

// BackgroundConfig composites the video over a backdrop. Padding is a
// percentage of min(width,height); BorderRadius is in pixels.
type BackgroundConfig struct {
	Type         BackgroundType `json:"type" yaml:"type"`
	Color        string         `json:"color,omitempty" yaml:"color,omitempty"`
	BlurRadius   int            `json:"blurRadius,omitempty" yaml:"blurRadius,omitempty"`
	ImagePath    string         `json:"imagePath,omitempty" yaml:"imagePath,omitempty"`
	Padding      float64        `json:"padding" yaml:"padding"`
	BorderRadius int            `json:"borderRadius" yaml:"borderRadius"`
}

// VideoInfo is caller-supplied metadata about the subject clip. The
// planner performs no media probing of its own.
type VideoInfo struct {
	Width      int     `json:"width" yaml:"width"`
	Height     int     `json:"height" yaml:"height"`
	DurationMs float64 `json:"durationMs" yaml:"durationMs"`
	FPS        float64 `json:"fps" yaml:"fps"`
}

// ProcessingConfig aggregates one input/output pair, the video metadata,
// and zero or more effect regions.
type ProcessingConfig struct {
	InputPath  string `json:"inputPath" yaml:"inputPath"`
	OutputPath string `json:"outputPath" yaml:"outputPath"`

	Video *VideoInfo `json:"video,omitempty" yaml:"video,omitempty"`

	Zoom        []ZoomRegion       `json:"zoom,omitempty" yaml:"zoom,omitempty"`
	Crop        *CropRegion        `json:"crop,omitempty" yaml:"crop,omitempty"`
	Trim        []TrimRegion       `json:"trim,omitempty" yaml:"trim,omitempty"`
	Background  *BackgroundConfig  `json:"background,omitempty" yaml:"background,omitempty"`
	Annotations []AnnotationRegion `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	// Optional output dimensions overriding the source resolution.
	OutputWidth  int `json:"outputWidth,omitempty" yaml:"outputWidth,omitempty"`
	OutputHeight int `json:"outputHeight,omitempty" yaml:"outputHeight,omitempty"`
}

// PipelineStep is one external engine invocation. Args is a flat argument
// vector beginning with the engine command name. Steps must be executed
// strictly in the order they are returned.
type PipelineStep struct {
	Description string   `json:"description"`
	Args        []string `json:"args"`
}
