package tiles

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngTile(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	img.Set(0, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestURL(t *testing.T) {
	s := NewSource("", "", zerolog.Nop())
	tile := maptile.New(1037, 704, 11)
	assert.Equal(t, "https://tile.openstreetmap.org/11/1037/704.png", s.URL(tile))

	s.SetTemplate("https://{s}.tiles.example.org/{z}/{x}/{y}{r}.png")
	assert.Equal(t, "https://b.tiles.example.org/11/1037/704.png", s.URL(tile))
}

func TestTile_FetchesAndCaches(t *testing.T) {
	body := pngTile(t)
	var hits atomic.Int32
	var agent atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		agent.Store(r.Header.Get("User-Agent"))
		assert.Equal(t, "/12/2074/1409.png", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	s := NewSource(srv.URL+"/{z}/{x}/{y}.png", "parcours-test", zerolog.Nop())
	tile := maptile.New(2074, 1409, 12)

	img, err := s.Tile(context.Background(), tile)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = s.Tile(context.Background(), tile)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second lookup should be served from cache")
	assert.Equal(t, "parcours-test", agent.Load())
	assert.Equal(t, 1, s.Cached())
}

func TestTile_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1/0/0.png" {
			_, _ = w.Write([]byte("not an image"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := NewSource(srv.URL+"/{z}/{x}/{y}.png", "", zerolog.Nop())

	_, err := s.Tile(context.Background(), maptile.New(1, 1, 1))
	assert.ErrorContains(t, err, "status 404")

	_, err = s.Tile(context.Background(), maptile.New(0, 0, 1))
	assert.ErrorContains(t, err, "decode tile")

	_, err = s.Tile(context.Background(), maptile.New(0, 0, 20))
	assert.ErrorIs(t, err, ErrZoomOutOfRange)

	assert.Equal(t, 0, s.Cached())
}

func TestSetTemplate_PurgesCache(t *testing.T) {
	body := pngTile(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	s := NewSource(srv.URL+"/{z}/{x}/{y}.png", "", zerolog.Nop())
	_, err := s.Tile(context.Background(), maptile.New(0, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 1, s.Cached())

	s.SetTemplate(srv.URL + "/{z}/{x}/{y}.png")
	assert.Equal(t, 1, s.Cached(), "same template keeps the cache")

	s.SetTemplate(srv.URL + "/other/{z}/{x}/{y}.png")
	assert.Equal(t, 0, s.Cached())
}
