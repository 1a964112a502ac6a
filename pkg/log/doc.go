// Package log provides the structured logging facade used by the yarq CLI
// and HTTP watcher. It is a thin layer over the standard library's slog:
// a small Logger interface with leveled methods, typed Field constructors,
// and text or JSON output selected by configuration.
//
//	l := log.New(log.Options{Level: log.InfoLevel, Format: log.FormatText})
//	l = l.With(log.Component("watch"), log.Str("queue", "render"))
//	l.Info("watching", log.Int("total", 128))
//
// The queue library itself stays silent and returns errors; logging is a
// presentation-layer concern.
package log
