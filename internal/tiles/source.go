package tiles

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb/maptile"
	"github.com/rs/zerolog"
)

// Tile server defaults
const (
	DefaultTemplate    = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "© OpenStreetMap contributors"
	DefaultMaxZoom     = 19

	MaxCachedTiles = 512
	MaxTileBytes   = 4 << 20
	FetchTimeout   = 15 * time.Second
)

var subdomains = []string{"a", "b", "c"}

// ErrZoomOutOfRange is returned for tiles deeper than the source serves
var ErrZoomOutOfRange = errors.New("tile zoom out of range")

// Source fetches slippy map tiles from a URL template and keeps them in memory
type Source struct {
	mu        sync.RWMutex
	template  string
	maxZoom   int
	userAgent string
	client    *http.Client
	log       zerolog.Logger

	cache  sync.Map
	cached atomic.Int64
}

// NewSource creates a tile source for template, e.g. DefaultTemplate
func NewSource(template, userAgent string, log zerolog.Logger) *Source {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return &Source{
		template:  template,
		maxZoom:   DefaultMaxZoom,
		userAgent: userAgent,
		client:    &http.Client{Timeout: FetchTimeout},
		log:       log.With().Str("component", "tiles").Logger(),
	}
}

// SetTemplate switches to another tile server and drops cached tiles
func (s *Source) SetTemplate(template string) {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}

	s.mu.Lock()
	changed := s.template != template
	s.template = template
	s.mu.Unlock()

	if changed {
		s.Purge()
	}
}

// Template returns the current URL template
func (s *Source) Template() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// MaxZoom returns the deepest zoom level the source serves
func (s *Source) MaxZoom() int {
	return s.maxZoom
}

// URL expands the template for t. {s} rotates over the a/b/c subdomains and
// {r} is always empty.
func (s *Source) URL(t maptile.Tile) string {
	sub := subdomains[int(t.X+t.Y)%len(subdomains)]
	r := strings.NewReplacer(
		"{s}", sub,
		"{z}", strconv.FormatUint(uint64(t.Z), 10),
		"{x}", strconv.FormatUint(uint64(t.X), 10),
		"{y}", strconv.FormatUint(uint64(t.Y), 10),
		"{r}", "",
	)
	return r.Replace(s.Template())
}

// Tile returns the decoded image for t, from the cache when possible
func (s *Source) Tile(ctx context.Context, t maptile.Tile) (image.Image, error) {
	if int(t.Z) > s.maxZoom {
		return nil, fmt.Errorf("%w: %d", ErrZoomOutOfRange, t.Z)
	}
	if img, ok := s.cache.Load(t); ok {
		return img.(image.Image), nil
	}

	img, err := s.fetch(ctx, t)
	if err != nil {
		return nil, err
	}

	if s.cached.Load() >= MaxCachedTiles {
		s.Purge()
	}
	if _, loaded := s.cache.LoadOrStore(t, img); !loaded {
		s.cached.Add(1)
	}
	return img, nil
}

// Purge empties the tile cache
func (s *Source) Purge() {
	s.cache.Range(func(key, _ any) bool {
		s.cache.Delete(key)
		return true
	})
	s.cached.Store(0)
}

// Cached returns the number of tiles held in memory
func (s *Source) Cached() int {
	return int(s.cached.Load())
}

func (s *Source) fetch(ctx context.Context, t maptile.Tile) (image.Image, error) {
	url := s.URL(t)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build tile request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch tile %d/%d/%d: status %d", t.Z, t.X, t.Y, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, MaxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("decode tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
	}

	s.log.Debug().Str("url", url).Msg("tile fetched")
	return img, nil
}
