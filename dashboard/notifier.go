package dashboard

import "go.uber.org/zap"

// Notifier is the toast layer: it shows outcomes to the admin.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// LogNotifier reports outcomes to a zap logger, for CLI and headless use.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Success(msg string) { n.Log.Info(msg) }

func (n LogNotifier) Error(msg string, err error) { n.Log.Error(msg, zap.Error(err)) }
