package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyPath        = "path"
	KeyTemplate    = "template"
	KeyOutput      = "output"
	KeyFingerprint = "fingerprint"
	KeyClients     = "clients"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Duration(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Template(name string) slog.Attr     { return slog.String(KeyTemplate, name) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Fingerprint(fp string) slog.Attr    { return slog.String(KeyFingerprint, fp) }
func Clients(n int) slog.Attr            { return slog.Int(KeyClients, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
