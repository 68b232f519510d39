package helper

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared structured logger. Controllers and middleware log
// through it with field-tagged entries.
var Logger *logrus.Logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func secretFromEnv() string {
	return os.Getenv("SECRET_KEY")
}
