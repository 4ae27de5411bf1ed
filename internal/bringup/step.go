package bringup

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

// Step runs one stage of the bring-up sequence. Failures come back wrapped
// with the stage name so the fatal diagnostic says which call failed.
func Step(name string, fn func() error) error {
	start := hrtime.Now()
	err := fn()
	elapsed := hrtime.Since(start)

	entry := log.WithFields(log.Fields{"step": name, "elapsed": elapsed})
	if err != nil {
		entry.WithError(err).Debug("step failed")
		return errors.Wrapf(err, "%s", name)
	}

	entry.Debug("step complete")
	return nil
}
