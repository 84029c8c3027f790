// Implements a raster backend to render follower tracks,
// by wrapping rasterx.
package trackraster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/ThundeRatz/FollowerTrackCreator/trackicon"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var _ trackicon.Driver = (*Renderer)(nil) // assert interface conformance

// maxDx is the maximum radians a cubic spline is allowed to span when
// approximating a circular arc.
const maxDx float64 = math.Pi / 8

// historical palette of the generator: white track on black, yellow labels
var (
	backgroundColor = color.NRGBA{A: 0xff}
	trackColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	labelColor      = color.NRGBA{R: 0xff, G: 0xff, A: 0xff}
)

const (
	// labelOffsetY raises the label anchor above its piece of track
	labelOffsetY = 20
	// fallback image size when the source declares no track size
	defaultWidth, defaultHeight = 1200, 700
)

var strokeWidth float64 = 1.9

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return p
}

// Renderer strokes track primitives into an image.
type Renderer struct {
	dasher *rasterx.Dasher
	img    *image.RGBA
}

// NewRenderer returns a renderer drawing into img with the default
// stroke. If scanner is nil, a rasterx.ScannerGV on img is used.
func NewRenderer(img *image.RGBA, scanner rasterx.Scanner) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, img.Bounds())
	}
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.Scanner.SetColor(trackColor)
	dasher.SetStroke(fixed.Int26_6(strokeWidth*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel, nil, 0)
	return &Renderer{dasher: dasher, img: img}
}

// RasterTrackToImage compiles the track source and renders it with a
// ScannerGV instance into a new image, sized from the viewport hint.
func RasterTrackToImage(src io.Reader, errMode trackicon.ErrorMode, opts trackicon.Options) (*image.RGBA, error) {
	track, err := trackicon.ReadTrackStream(src, errMode, opts)
	if err != nil {
		return nil, err
	}
	w, h := defaultWidth, defaultHeight
	if track.Viewport != nil {
		// round up so a fractional declared size never clips the margin edge
		w, h = int(math.Ceil(track.Viewport.Width)), int(math.Ceil(track.Viewport.Height))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	track.Draw(NewRenderer(img, nil))
	return img, nil
}

func (rd *Renderer) stroke() {
	rd.dasher.Stop(false)
	rd.dasher.Draw()
	rd.dasher.Clear()
}

func (rd *Renderer) Line(from, to trackicon.Point) {
	rd.dasher.Start(toFixedP(from.X, from.Y))
	rd.dasher.Line(toFixedP(to.X, to.Y))
	rd.stroke()
}

// Arc flattens the circular arc to cubic beziers, one per maxDx span,
// following the method of L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.
// A point at angle a is center + radius*(cos a, -sin a): the primitives
// carry the y-down screen convention, which the parametric derivative
// absorbs.
func (rd *Renderer) Arc(center trackicon.Point, radius, startAngle, sweep float64) {
	eta := startAngle * math.Pi / 180
	delta := sweep * math.Pi / 180
	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	lx, ly := arcPointAt(center, radius, eta)
	ldx, ldy := arcPrime(radius, eta)
	rd.dasher.Start(toFixedP(lx, ly))
	for i := 1; i <= segs; i++ {
		eta := eta + dEta*float64(i)
		px, py := arcPointAt(center, radius, eta)
		dx, dy := arcPrime(radius, eta)
		rd.dasher.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(px-alpha*dx, py-alpha*dy), toFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	rd.stroke()
}

// arcPointAt gives the point of the parameterized arc at angle eta.
func arcPointAt(center trackicon.Point, radius, eta float64) (px, py float64) {
	return center.X + radius*math.Cos(eta), center.Y - radius*math.Sin(eta)
}

// arcPrime gives the tangent vector of the parameterized arc at angle eta.
func arcPrime(radius, eta float64) (dx, dy float64) {
	return -radius * math.Sin(eta), -radius * math.Cos(eta)
}

func (rd *Renderer) Rect(width, height float64) {
	rd.dasher.Start(toFixedP(0, 0))
	rd.dasher.Line(toFixedP(width, 0))
	rd.dasher.Line(toFixedP(width, height))
	rd.dasher.Line(toFixedP(0, height))
	rd.dasher.Stop(true)
	rd.dasher.Draw()
	rd.dasher.Clear()
}

func (rd *Renderer) Label(at trackicon.Point, text string) {
	drawer := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(at.X), int(at.Y)-labelOffsetY),
	}
	drawer.DrawString(text)
}
