package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BootstrapLogger() {
	Log = &logrus.Logger{
		Out: os.Stdout,
		Formatter: &logrus.TextFormatter{
			FullTimestamp: true,
		},
		Level: logrus.DebugLevel,
	}

	Log.SetReportCaller(true)
}
