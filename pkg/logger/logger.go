package logger

import (
	"fmt"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

const TimestampFormat = "2006-01-02 15:04:05"

func SetupLogger(level string) {
	log.SetReportCaller(true)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: TimestampFormat,
	})

	SetLevel(level)
}

// SetLevel falls back to INFO when level cannot be parsed.
func SetLevel(level string) {
	loggerLevel, err := log.ParseLevel(level)
	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
		return
	}
	if log.GetLevel() != loggerLevel {
		log.SetLevel(loggerLevel)
		log.Infof("Log level set to %s", loggerLevel)
	}
}
