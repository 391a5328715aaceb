package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Init must be called once at startup
// before any package uses it.
var Log *logrus.Logger

func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(logrus.InfoLevel)
}
