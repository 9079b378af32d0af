package app

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Logs go to w, never to the trace
// output.
func NewLogger(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}

	return logger, nil
}
