package wa

import (
	"fmt"
	"log/slog"

	waLog "go.mau.fi/whatsmeow/util/log"
)

// waLogger bridges whatsmeow's printf-style logger onto slog.
type waLogger struct {
	l *slog.Logger
}

func newWALogger(l *slog.Logger) waLog.Logger {
	return waLogger{l: l}
}

func (w waLogger) Errorf(msg string, args ...any) { w.l.Error(fmt.Sprintf(msg, args...)) }
func (w waLogger) Warnf(msg string, args ...any)  { w.l.Warn(fmt.Sprintf(msg, args...)) }
func (w waLogger) Infof(msg string, args ...any)  { w.l.Info(fmt.Sprintf(msg, args...)) }
func (w waLogger) Debugf(msg string, args ...any) { w.l.Debug(fmt.Sprintf(msg, args...)) }

func (w waLogger) Sub(module string) waLog.Logger {
	return waLogger{l: w.l.With("module", module)}
}
