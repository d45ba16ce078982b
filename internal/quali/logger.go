package quali

import "github.com/sirupsen/logrus"

// Logger is the logging interface threaded through the service. It is
// satisfied by *logrus.Logger and *logrus.Entry, so callers can attach
// fields (e.g. a request ID) and pass the result straight back in.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithError(err error) *logrus.Entry
	WithField(key string, value interface{}) *logrus.Entry
}
