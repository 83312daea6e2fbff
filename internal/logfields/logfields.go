package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyIconSet    = "icon_set"
	KeyIcon       = "icon"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyName       = "name"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func IconSet(id string) slog.Attr      { return slog.String(KeyIconSet, id) }
func Icon(name string) slog.Attr       { return slog.String(KeyIcon, name) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Name(n string) slog.Attr          { return slog.String(KeyName, n) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Count(c int) slog.Attr            { return slog.Int(KeyCount, c) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
