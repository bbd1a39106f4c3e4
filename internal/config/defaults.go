package config

const (
	defaultMetadataFile     = "README.md"
	defaultSourceDir        = "farragone"
	defaultPoDir            = "po"
	defaultLocaleDir        = "locale"
	defaultDesktopFile      = "farragone.desktop"
	defaultIconRoot         = "icons"
	defaultPrefix           = "/usr/local"
	defaultPackagingCommand = "./setup"
	defaultInterpreter      = "python3"
	defaultFallback         = "/usr/bin/env python3"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: Project{
			Root:         ".",
			MetadataFile: defaultMetadataFile,
			SourceDir:    defaultSourceDir,
			PoDir:        defaultPoDir,
			LocaleDir:    defaultLocaleDir,
			Scripts:      []string{"run", "setup"},
			DesktopFile:  defaultDesktopFile,
			IconRoot:     defaultIconRoot,
			DocFiles:     []string{"README.md", "CHANGELOG"},
		},
		Paths: Paths{
			Prefix: defaultPrefix,
		},
		Packaging: Packaging{
			Command: defaultPackagingCommand,
			PackageDirGlobs: []string{
				"lib/python*/site-packages/farragone",
				"lib/python*/site-packages/farragone-*",
			},
		},
		Shebang: Shebang{
			Interpreter: defaultInterpreter,
			Fallback:    defaultFallback,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
