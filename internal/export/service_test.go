package export

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="Strava+Coach" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Parcours endurance 10km</name>
    <trkseg>
      <trkpt lat="48.8584" lon="2.2945"><ele>35</ele></trkpt>
      <trkpt lat="48.8600" lon="2.2970"><ele>40</ele></trkpt>
      <trkpt lat="48.8584" lon="2.2945"><ele>35</ele></trkpt>
    </trkseg>
  </trk>
</gpx>
`

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1718000000123)
	if name := FileName(ts); name != "parcours_1718000000123.gpx" {
		t.Errorf("FileName() = %s, expected parcours_1718000000123.gpx", name)
	}
}

func TestExport_NoArtifact(t *testing.T) {
	dir := t.TempDir()
	service := NewService(dir, zerolog.Nop())

	_, err := service.Export("")
	if !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("Expected ErrNoArtifact, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Export without artifact must not write anything, found %d entries", len(entries))
	}
}

func TestExport_WritesExactContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Downloads")
	service := NewService(dir, zerolog.Nop())
	service.now = func() time.Time { return time.UnixMilli(1718000000123) }

	path, err := service.Export(sampleGPX)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("Expected file in %s, got %s", dir, path)
	}
	if !regexp.MustCompile(`^parcours_\d+\.gpx$`).MatchString(filepath.Base(path)) {
		t.Errorf("Unexpected file name %s", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != sampleGPX {
		t.Errorf("Exported content differs from artifact")
	}

	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("Temporary file left behind: %s", entry.Name())
		}
	}
}

func TestExport_NonGPXArtifactIsStillWritten(t *testing.T) {
	service := NewService(t.TempDir(), zerolog.Nop())

	path, err := service.Export("not really xml")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "not really xml" {
		t.Errorf("Expected artifact bytes, got %q", content)
	}
}

func TestSetDirectory(t *testing.T) {
	service := NewService("/tmp/a", zerolog.Nop())
	service.SetDirectory("/tmp/b")

	if service.Directory() != "/tmp/b" {
		t.Errorf("Expected directory /tmp/b, got %s", service.Directory())
	}
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(sampleGPX)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.Points != 3 {
		t.Errorf("Expected 3 points, got %d", summary.Points)
	}
	if summary.Name != "Parcours endurance 10km" {
		t.Errorf("Unexpected name %q", summary.Name)
	}
	if summary.LengthM <= 0 {
		t.Errorf("Expected a positive length, got %f", summary.LengthM)
	}

	if _, err := Summarize("garbage"); err == nil {
		t.Error("Expected an error for a non-GPX document")
	}
}
