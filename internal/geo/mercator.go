package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// TileSize is the edge of a slippy map tile in pixels
const TileSize = 256

// MaxLatitude is the latitude limit of the Web Mercator projection
const MaxLatitude = 85.0511287798

// Project converts a [lon, lat] point to world pixel coordinates at zoom
func Project(p orb.Point, zoom int) (x, y float64) {
	lat := math.Max(-MaxLatitude, math.Min(MaxLatitude, p.Lat()))
	latRad := lat * math.Pi / 180
	scale := TileSize * math.Exp2(float64(zoom))

	x = (p.Lon() + 180) / 360 * scale
	y = (1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * scale
	return x, y
}

// Unproject converts world pixel coordinates at zoom back to a [lon, lat] point
func Unproject(x, y float64, zoom int) orb.Point {
	scale := TileSize * math.Exp2(float64(zoom))

	lon := x/scale*360 - 180
	n := math.Pi * (1 - 2*y/scale)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return orb.Point{lon, lat}
}

// TileAt returns the tile containing world pixel (x, y) at zoom, wrapping x
// around the antimeridian. ok is false when y falls outside the world.
func TileAt(x, y float64, zoom int) (maptile.Tile, bool) {
	n := int64(1) << uint(zoom)
	tx := int64(math.Floor(x / TileSize))
	ty := int64(math.Floor(y / TileSize))
	if ty < 0 || ty >= n {
		return maptile.Tile{}, false
	}
	tx = ((tx % n) + n) % n
	return maptile.New(uint32(tx), uint32(ty), maptile.Zoom(zoom)), true
}

// BoundsZoom returns the largest zoom, at most maxZoom, at which bound fits
// in a width x height viewport keeping padding pixels free on every side.
func BoundsZoom(bound orb.Bound, width, height, padding, maxZoom int) int {
	availW := float64(width - 2*padding)
	availH := float64(height - 2*padding)
	if availW <= 0 || availH <= 0 {
		return 0
	}

	for z := maxZoom; z > 0; z-- {
		minX, maxY := Project(bound.Min, z)
		maxX, minY := Project(bound.Max, z)
		if maxX-minX <= availW && maxY-minY <= availH {
			return z
		}
	}
	return 0
}

// BoundsCenter returns the point at the middle of bound in projected space
func BoundsCenter(bound orb.Bound, zoom int) orb.Point {
	minX, maxY := Project(bound.Min, zoom)
	maxX, minY := Project(bound.Max, zoom)
	return Unproject((minX+maxX)/2, (minY+maxY)/2, zoom)
}
