package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/ytget/parcours/internal/platform"
)

// Exported file naming and type
const (
	FilePrefix      = "parcours_"
	FileExtension   = ".gpx"
	MediaType       = "application/gpx+xml"
	FilePermissions = 0644

	tempPattern = ".parcours-*.gpx.tmp"
)

// ErrNoArtifact is returned when there is nothing to export yet
var ErrNoArtifact = errors.New("no route to export")

// FileName returns the name of a file exported at t
func FileName(t time.Time) string {
	return fmt.Sprintf("%s%d%s", FilePrefix, t.UnixMilli(), FileExtension)
}

// Service writes GPX artifacts into the download directory
type Service struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
	log zerolog.Logger
}

// NewService creates an export service writing into dir
func NewService(dir string, log zerolog.Logger) *Service {
	return &Service{
		dir: dir,
		now: time.Now,
		log: log.With().Str("component", "export").Logger(),
	}
}

// SetDirectory sets the directory exported files are written to
func (s *Service) SetDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = dir
}

// Directory returns the current export directory
func (s *Service) Directory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir
}

// Export writes the artifact byte for byte to <dir>/parcours_<unix-ms>.gpx.
// The file is first written to a temporary file which is renamed into place;
// the temporary file never outlives the call.
func (s *Service) Export(artifact string) (string, error) {
	if artifact == "" {
		return "", ErrNoArtifact
	}

	dir := s.Directory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(artifact); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write GPX: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, FilePermissions); err != nil {
		return "", fmt.Errorf("set file permissions: %w", err)
	}

	path := filepath.Join(dir, FileName(s.now()))
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("move GPX into place: %w", err)
	}

	event := s.log.Info().Str("path", path).Str("media_type", MediaType).Int("bytes", len(artifact))
	if summary, err := Summarize(artifact); err == nil {
		event = event.Int("points", summary.Points).Float64("length_m", summary.LengthM)
	} else {
		s.log.Warn().Err(err).Msg("exported artifact is not readable as GPX")
	}
	event.Msg("route exported")

	return path, nil
}

// Summary describes the track contained in a GPX artifact
type Summary struct {
	Name    string
	Points  int
	LengthM float64
	UphillM float64
}

// Summarize parses a GPX document and returns its track statistics
func Summarize(artifact string) (Summary, error) {
	doc, err := gpx.ParseBytes([]byte(artifact))
	if err != nil {
		return Summary{}, fmt.Errorf("parse GPX: %w", err)
	}

	summary := Summary{
		Name:    doc.Name,
		Points:  doc.GetTrackPointsNo(),
		LengthM: doc.Length2D(),
		UphillM: doc.UphillDownhill().Uphill,
	}
	if summary.Name == "" && len(doc.Tracks) > 0 {
		summary.Name = doc.Tracks[0].Name
	}
	return summary, nil
}
