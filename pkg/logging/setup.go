package logging

import (
	"cmp"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/forge-dev/forge/pkg/paths"
)

// DefaultLogFile is the debug log location used when no --log-file is given.
func DefaultLogFile() string {
	return filepath.Join(paths.GetDataDir(), "forge.debug.log")
}

// Setup installs the process-wide slog logger.
//
// Without debug, logs are discarded. With debug, they are written at debug
// level to a rotating file at logFile (or DefaultLogFile). The returned closer
// must be closed when the command finishes; it is nil when nothing was opened.
func Setup(debug bool, logFile string) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}

	path := cmp.Or(strings.TrimSpace(logFile), DefaultLogFile())
	file, err := NewRotatingFile(path)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return file, nil
}
