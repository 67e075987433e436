package mapview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/paulmach/orb/maptile"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/parcours/internal/geo"
)

// ErrNoViewport is returned by Render before the surface has a size
var ErrNoViewport = errors.New("map viewport has no size")

// MaxConcurrentTiles bounds parallel tile fetches during one render
const MaxConcurrentTiles = 6

var background = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// TileFetcher returns the image of one map tile
type TileFetcher interface {
	Tile(ctx context.Context, t maptile.Tile) (image.Image, error)
}

var (
	fontsOnce    sync.Once
	regularFont  *truetype.Font
	boldFont     *truetype.Font
	fontParseErr error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontParseErr = truetype.Parse(goregular.TTF)
		if fontParseErr != nil {
			return
		}
		boldFont, fontParseErr = truetype.Parse(gobold.TTF)
	})
	return fontParseErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

type placedTile struct {
	tile maptile.Tile
	x, y float64
	img  image.Image
}

// Render rasterizes the current view: base tiles, overlay layers and the
// attribution. Tiles that cannot be fetched are left blank.
func (s *Surface) Render(ctx context.Context, fetcher TileFetcher) (image.Image, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	s.mu.RLock()
	width, height := s.width, s.height
	v := s.viewLocked()
	attribution := s.tiles.Attribution
	s.mu.RUnlock()

	if width <= 0 || height <= 0 {
		return nil, ErrNoViewport
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()

	if fetcher != nil {
		placed, err := s.fetchTiles(ctx, fetcher, v, width, height)
		if err != nil {
			return nil, err
		}
		for _, p := range placed {
			if p.img != nil {
				dc.DrawImage(p.img, int(math.Round(p.x)), int(math.Round(p.y)))
			}
		}
	}

	s.overlay.mu.RLock()
	for _, l := range s.overlay.layers {
		l.draw(dc, v)
	}
	s.overlay.mu.RUnlock()

	drawAttribution(dc, attribution)
	return dc.Image(), nil
}

func (s *Surface) fetchTiles(ctx context.Context, fetcher TileFetcher, v view, width, height int) ([]placedTile, error) {
	minTX := int(math.Floor(v.originX / geo.TileSize))
	maxTX := int(math.Floor((v.originX + float64(width) - 1) / geo.TileSize))
	minTY := int(math.Floor(v.originY / geo.TileSize))
	maxTY := int(math.Floor((v.originY + float64(height) - 1) / geo.TileSize))

	var placed []placedTile
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			wx, wy := float64(tx*geo.TileSize), float64(ty*geo.TileSize)
			tile, ok := geo.TileAt(wx, wy, v.zoom)
			if !ok {
				continue
			}
			placed = append(placed, placedTile{tile: tile, x: wx - v.originX, y: wy - v.originY})
		}
	}

	var (
		failedMu sync.Mutex
		failed   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentTiles)
	for i := range placed {
		g.Go(func() error {
			img, err := fetcher.Tile(gctx, placed[i].tile)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failedMu.Lock()
				failed++
				failedMu.Unlock()
				s.log.Debug().Err(err).Msg("tile unavailable")
				return nil
			}
			placed[i].img = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if failed > 0 {
		s.log.Warn().Int("failed", failed).Int("total", len(placed)).Msg("some map tiles could not be loaded")
	}
	return placed, nil
}

func drawPopup(dc *gg.Context, x, y float64, title, text string) {
	const (
		pad     = 8.0
		lineGap = 4.0
		tip     = 8.0
	)

	titleFace := face(boldFont, 13)
	textFace := face(regularFont, 12)

	dc.SetFontFace(titleFace)
	titleW, titleH := dc.MeasureString(title)
	dc.SetFontFace(textFace)
	textW, textH := dc.MeasureString(text)
	if text == "" {
		textW, textH = 0, 0
	}

	w := math.Max(titleW, textW) + 2*pad
	h := titleH + textH + 2*pad
	if text != "" {
		h += lineGap
	}
	left := x - w/2
	top := y - tip - h

	dc.Push()
	defer dc.Pop()

	dc.DrawRoundedRectangle(left, top, w, h, 6)
	dc.MoveTo(x-tip, top+h)
	dc.LineTo(x, y)
	dc.LineTo(x+tip, top+h)
	dc.ClosePath()
	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetRGB(0.13, 0.13, 0.13)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(title, left+pad, top+pad, 0, 1)
	if text != "" {
		dc.SetFontFace(textFace)
		dc.DrawStringAnchored(text, left+pad, top+pad+titleH+lineGap, 0, 1)
	}
}

func drawAttribution(dc *gg.Context, text string) {
	if text == "" {
		return
	}
	const pad = 4.0

	dc.Push()
	defer dc.Pop()

	dc.SetFontFace(face(regularFont, 10))
	w, h := dc.MeasureString(text)
	right, bottom := float64(dc.Width()), float64(dc.Height())

	dc.DrawRectangle(right-w-2*pad, bottom-h-2*pad, w+2*pad, h+2*pad)
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.Fill()

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(text, right-pad, bottom-pad, 1, 0)
}
