package config

const (
	defaultConfigPath      = "~/.config/caption-timeline-cli/config.toml"
	defaultDatabasePath    = "~/.local/share/caption-timeline-cli/data.db"
	defaultLogDir          = "~/.local/share/caption-timeline-cli/logs"
	defaultPresetsFile     = "~/.config/caption-timeline-cli/presets.yaml"
	defaultMpvSocket       = "/tmp/caption-timeline-mpv.sock"
	defaultLyricPreset     = "classic"
	defaultLayoutPreset    = "centered"
	defaultPixelsPerSecond = 100.0
	defaultScrubQuantumMs  = 50
	defaultSectionGapMs    = 650
	defaultMaxLanes        = 10
	defaultMaxWords        = 3
	defaultMaxLines        = 4
	defaultTickMs          = 100
	defaultBackend         = BackendSQLite
	defaultDebounceMs      = 500
	defaultTimeoutSeconds  = 15
	defaultRetryDelayMs    = 1000
	defaultKeepRevisions   = 50
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Persistence backends.
const (
	BackendSQLite = "sqlite"
	BackendHTTP   = "http"
	BackendMemory = "memory"
)

// Environment variables read during normalization.
const (
	EnvAPIURL     = "CAPTION_API_URL"
	EnvAPIToken   = "CAPTION_API_TOKEN"
	EnvAPIProject = "CAPTION_API_PROJECT"
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:    defaultDatabasePath,
			LogDir:      defaultLogDir,
			PresetsFile: defaultPresetsFile,
			MpvSocket:   defaultMpvSocket,
		},
		Editor: Editor{
			LyricPreset:     defaultLyricPreset,
			LayoutPreset:    defaultLayoutPreset,
			PixelsPerSecond: defaultPixelsPerSecond,
			ScrubQuantumMs:  defaultScrubQuantumMs,
			SectionGapMs:    defaultSectionGapMs,
			MaxLanes:        defaultMaxLanes,
			MaxWords:        defaultMaxWords,
			MaxLines:        defaultMaxLines,
			TickMs:          defaultTickMs,
			MirrorOverlay:   true,
		},
		Persistence: Persistence{
			Backend:        defaultBackend,
			DebounceMs:     defaultDebounceMs,
			TimeoutSeconds: defaultTimeoutSeconds,
			RetryDelayMs:   defaultRetryDelayMs,
			KeepRevisions:  defaultKeepRevisions,
		},
		Render: Render{
			Karaoke:  true,
			MaxWords: defaultMaxWords,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
