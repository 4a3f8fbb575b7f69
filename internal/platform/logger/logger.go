package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// Configure sets the level ("debug", "info", "warn", "error") and the output
// format ("text" or "json"). Unknown levels fall back to info.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Logger returns the underlying logrus instance.
func Logger() *logrus.Logger {
	return log
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func Info(msg string, v ...interface{}) {
	log.Infof(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	log.Warnf(msg, v...)
}

func Error(msg string, err error, v ...interface{}) {
	if err != nil {
		log.WithError(err).Errorf(msg, v...)
		return
	}
	log.Errorf(msg, v...)
}
