package config

const (
	defaultStagingDir       = "~/.local/share/clipforge/staging"
	defaultDataDir          = "~/.local/share/clipforge/data"
	defaultLogDir           = "~/.local/share/clipforge/logs"
	defaultFFmpegBinary     = "ffmpeg"
	defaultUploadFolder     = "rendered_videos"
	defaultRenderResolution = "original"
	defaultRenderQuality    = "high"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Upload: Upload{
			Folder: defaultUploadFolder,
		},
		Render: Render{
			Resolution: defaultRenderResolution,
			Quality:    defaultRenderQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
