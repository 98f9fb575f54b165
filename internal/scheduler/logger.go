package scheduler

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// cronLogger adapts logrus to cron.Logger. Routine cron chatter goes to
// debug; skipped triggers are surfaced as warnings.
type cronLogger struct {
	l *logrus.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	entry := c.l.WithFields(kvFields(keysAndValues))
	if msg == "skip" {
		entry.Warn("previous sync cycle still running, trigger skipped")
		return
	}
	entry.Debugf("cron: %s", msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.WithFields(kvFields(keysAndValues)).WithError(err).Errorf("cron: %s", msg)
}

func kvFields(kv []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
