package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Actions log expected-absence events
// (element not found, no modal) at debug level so normal runs stay readable.
var Log = logrus.New()

func init() {
	out := io.Writer(os.Stderr)
	if file, err := os.OpenFile("autodailies.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
		out = io.MultiWriter(os.Stderr, file)
	}
	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Log.SetLevel(logrus.InfoLevel)
}

// SetDebug switches the shared logger to debug level.
func SetDebug(on bool) {
	if on {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
