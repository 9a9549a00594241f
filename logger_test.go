package curve

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger is enabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	// A right angle forces a miter join on the outer edge.
	a := mustSegment(t, Pt(0, 0, 0), Pt(3, 0, 0), Pt(7, 0, 0), Pt(10, 0, 0))
	b := mustSegment(t, Pt(10, 0, 0), Pt(10, 3, 0), Pt(10, 7, 0), Pt(10, 10, 0))
	if _, err := mustSpline(t, a, b).Stroke(2, 0.01); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "stroke miter join") {
		t.Errorf("log lacks miter join:\n%s", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetLogger(nil) didn't restore the silent logger")
	}
}
