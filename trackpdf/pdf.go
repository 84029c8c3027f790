// Implements a PDF backend to render follower tracks,
// by wrapping github.com/jung-kurt/gofpdf.
package trackpdf

import (
	"io"

	"github.com/ThundeRatz/FollowerTrackCreator/trackicon"
	"github.com/jung-kurt/gofpdf"
)

var _ trackicon.Driver = Renderer{} // assert interface conformance

const (
	strokeWidth = 1.9
	// labelOffsetY raises the label anchor above its piece of track
	labelOffsetY = 20
	// fallback page size, in points, when the source declares no track size
	defaultWidth, defaultHeight = 1200, 700
)

// Renderer writes track primitives as PDF page content.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer returns a renderer which will write to the given `pdf`.
// The caller is expected to have added a page and selected a font.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// RenderTrackPDF compiles the track source and writes a one page PDF
// document, sized from the viewport hint, to `out`.
func RenderTrackPDF(src io.Reader, out io.Writer, errMode trackicon.ErrorMode, opts trackicon.Options) error {
	track, err := trackicon.ReadTrackStream(src, errMode, opts)
	if err != nil {
		return err
	}
	w, h := float64(defaultWidth), float64(defaultHeight)
	if track.Viewport != nil {
		w, h = track.Viewport.Width, track.Viewport.Height
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetLineWidth(strokeWidth)
	track.Draw(NewRenderer(pdf))
	return pdf.Output(out)
}

func (r Renderer) Line(from, to trackicon.Point) {
	r.pdf.MoveTo(from.X, from.Y)
	r.pdf.LineTo(to.X, to.Y)
	r.pdf.DrawPath("D")
}

// Arc relies on gofpdf sharing the primitive's angle convention:
// degrees measured counter-clockwise from the 3 o'clock position.
func (r Renderer) Arc(center trackicon.Point, radius, startAngle, sweep float64) {
	r.pdf.Arc(center.X, center.Y, radius, radius, 0, startAngle, startAngle+sweep, "D")
}

func (r Renderer) Rect(width, height float64) {
	r.pdf.Rect(0, 0, width, height, "D")
}

func (r Renderer) Label(at trackicon.Point, text string) {
	r.pdf.Text(at.X, at.Y-labelOffsetY, text)
}
