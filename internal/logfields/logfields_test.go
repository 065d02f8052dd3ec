package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "render", Stage("render")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Template", KeyTemplate, "layout", Template("layout")},
		{"Output", KeyOutput, "dist/index.html", Output("dist/index.html")},
		{"Fingerprint", KeyFingerprint, "abc", Fingerprint("abc")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %q, got %q", tc.name, tc.attrVal, got)
		}
	}
}

func TestDuration(t *testing.T) {
	a := Duration(1500 * time.Microsecond)
	if a.Key != KeyDurationMS {
		t.Fatalf("unexpected key %s", a.Key)
	}
	if got := a.Value.Float64(); got != 1.5 {
		t.Fatalf("expected 1.5ms, got %v", got)
	}
	if Clients(3).Value.Int64() != 3 {
		t.Fatalf("clients attr mismatch")
	}
}
