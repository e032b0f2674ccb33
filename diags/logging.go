package diags

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SetupLogging sends logrus output to the same place as other messages, with
// full timestamps, at the named level ("" means "warning").
//
func SetupLogging(level string) error {
	if level == "" {
		level = "warning"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "set log level")
	}
	logrus.SetOutput(Output)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(lvl)
	return nil
}
