package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "packmapper"

	// LogFileName is the name of the log file
	LogFileName = "packmapper.log"
)

// Level maps the count of -v flags to a log level. Without flags only
// warnings (files left untouched, cleanup failures) are shown.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger installs the global logger: human readable lines on stderr
// and JSON lines appended to the log file.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(Level(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}

	path := LogFilePath()
	file, fileErr := openLogFile(path)

	var out io.Writer = console
	if fileErr == nil {
		out = zerolog.MultiLevelWriter(console, file)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Logging to the console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("log_file", path).Msg("Logger ready")
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ForRun returns a component logger that also carries the run id, so the
// lines of parallel conversions can be told apart in the log file
func ForRun(component, runID string) zerolog.Logger {
	return log.With().Str("component", component).Str("run", runID).Logger()
}

// LogFilePath is $XDG_STATE_HOME/packmapper/packmapper.log
func LogFilePath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		state = xdg.StateHome
	}
	return filepath.Join(state, AppDirName, LogFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// StartStep logs the start of a pipeline step and returns the function
// that logs its completion with the elapsed time
func StartStep(logger zerolog.Logger, step string) func() {
	start := time.Now()
	logger.Debug().Str("step", step).Msg("Step started")
	return func() {
		logger.Debug().Str("step", step).Dur("duration", time.Since(start)).Msg("Step finished")
	}
}
