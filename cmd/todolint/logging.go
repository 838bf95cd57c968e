package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

func newLogger(w io.Writer, flags globalFlags) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	switch strings.ToLower(strings.TrimSpace(flags.logFormat)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid --log-format: %s", flags.logFormat)
	}
	switch {
	case flags.verbose:
		logger.SetLevel(logrus.DebugLevel)
	case flags.quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger, nil
}
