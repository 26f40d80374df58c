// Package config handles viewer configuration loading and management.
package config

// Config holds all gorefold settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Timeline TimelineConfig `yaml:"timeline"`
	Balls    BallsConfig    `yaml:"balls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SphereConfig describes one of the three nested spheres, outer to inner.
type SphereConfig struct {
	Radius float32    `yaml:"radius"`
	RestY  float32    `yaml:"rest_y"`
	Color  [3]float32 `yaml:"color"`
}

// SceneConfig holds sphere and panel geometry settings.
type SceneConfig struct {
	PanelCount int            `yaml:"panel_count"`
	GridMode   string         `yaml:"grid_mode"`   // rectangular|minimal|triangular|radial
	DeformMode string         `yaml:"deform_mode"` // grid mode used for the eye deform
	TwistTurns float32        `yaml:"twist_turns"`
	Spheres    []SphereConfig `yaml:"spheres"`
	AlignY     float32        `yaml:"align_y"` // shared bottom line when fully unwrapped
}

// TimelineConfig holds phase durations in seconds and caption typing speed.
type TimelineConfig struct {
	CirclesMove    float32 `yaml:"circles_move"`
	FormingGores   float32 `yaml:"forming_gores"`
	Unwrapping     float32 `yaml:"unwrapping"`
	Wrapping       float32 `yaml:"wrapping"`
	DeformingGores float32 `yaml:"deforming_gores"`
	TypeSpeed      float32 `yaml:"type_speed"` // caption characters per second
}

// BallsConfig holds agent simulation settings.
type BallsConfig struct {
	Max  int     `yaml:"max"`
	Fade float32 `yaml:"fade"` // fade-in duration in seconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			PanelCount: 9,
			GridMode:   "rectangular",
			DeformMode: "radial",
			TwistTurns: 1.5,
			Spheres: []SphereConfig{
				{Radius: 2.2, RestY: 0.0, Color: [3]float32{0.92, 0.36, 0.30}},
				{Radius: 1.55, RestY: -0.65, Color: [3]float32{0.32, 0.65, 0.92}},
				{Radius: 1.0, RestY: -1.2, Color: [3]float32{0.95, 0.78, 0.30}},
			},
			AlignY: -2.4,
		},
		Timeline: TimelineConfig{
			CirclesMove:    6.5,
			FormingGores:   2.0,
			Unwrapping:     8.0,
			Wrapping:       8.0,
			DeformingGores: 2.0,
			TypeSpeed:      18.0,
		},
		Balls: BallsConfig{
			Max:  3,
			Fade: 1.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
