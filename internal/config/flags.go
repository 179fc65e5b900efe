package config

import "flag"

// Flags are the command-line overrides understood by Load.
type Flags struct {
	Config        string
	Debug         bool
	IncludeHidden bool
	LogFile       string
	OutputDir     string
}

// RegisterFlags defines the config flags on fs and returns their targets.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.IncludeHidden, "include-hidden", false, "Export hidden mesh objects")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&f.OutputDir, "output-dir", "", "Directory for output files when no path is given")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.IncludeHidden {
		cfg.Export.IncludeHidden = true
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDir = f.OutputDir
	}
}
