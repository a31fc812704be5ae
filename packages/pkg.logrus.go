package packages

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// LogrusSetup switches to JSON output in production and applies level,
// falling back to info for unknown levels.
func LogrusSetup(production bool, level string) {
	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	logger.SetLevel(lvl)
}

func Logger() *logrus.Logger {
	return logger
}

func Logrus(Type string, Msg interface{}, Args ...interface{}) {
	message := fmt.Sprint(Msg)
	if format, ok := Msg.(string); ok && len(Args) > 0 {
		message = fmt.Sprintf(format, Args...)
	}

	switch Type {
	case "debug":
		logger.Debug(message)
	case "warn":
		logger.Warn(message)
	case "error":
		logger.Error(message)
	case "fatal":
		logger.Fatal(message)
	default:
		logger.Info(message)
	}
}
