// Package export renders the current graph into a downloadable PDF.
// The page orientation follows the layout of the graph and the view is
// fitted to the graph bounds before rasterizing.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"
)

var (
	// ErrNoSurface means no render surface is attached to the session.
	ErrNoSurface = errors.New("no render surface available")

	// ErrNothingToExport means the graph has no nodes to draw.
	ErrNothingToExport = errors.New("nothing to export")
)

// Filename is the name the exported document is served under.
const Filename = "historical-flow.pdf"

// PagePadding is the margin, in graph units, kept around the graph
// bounds on the exported page.
const PagePadding = 24.0

// Transform maps graph coordinates onto the render surface.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Viewport describes the drawing area and transform of a surface.
type Viewport struct {
	Width     float64
	Height    float64
	Transform Transform
}

// Surface is a drawing target whose viewport can be repositioned and
// whose contents can be rasterized to an image.
type Surface interface {
	Viewport() Viewport
	SetViewport(v Viewport)
	Rasterize(ctx context.Context, width, height int) (image.Image, error)
}

// pageSize picks the page dimensions for the graph: oriented along the
// graph's spread, with the minor axis raised so the aspect ratio never
// exceeds 2:1.
func pageSize(bounds geometry.Rect, orientation geometry.Orientation) (w, h float64) {
	w = bounds.Width + 2*PagePadding
	h = bounds.Height + 2*PagePadding
	if orientation == geometry.OrientationHorizontal {
		if h < w/2 {
			h = w / 2
		}
	} else {
		if w < h/2 {
			w = h / 2
		}
	}
	return w, h
}

// ToPDF fits the surface viewport to the graph bounds, rasterizes it
// and writes a single-page PDF to w. The surface's original viewport is
// restored whether or not the export succeeds.
func ToPDF(ctx context.Context, surface Surface, nodes []common.Node, w io.Writer) error {
	if surface == nil {
		return ErrNoSurface
	}
	if len(nodes) == 0 {
		return ErrNothingToExport
	}

	bounds := geometry.BoundingBox(nodes)
	orientation := geometry.DetectOrientation(nodes)
	pageW, pageH := pageSize(bounds, orientation)

	scale := (pageW - 2*PagePadding) / bounds.Width
	if s := (pageH - 2*PagePadding) / bounds.Height; s < scale {
		scale = s
	}

	original := surface.Viewport()
	defer surface.SetViewport(original)

	surface.SetViewport(Viewport{
		Width:  pageW,
		Height: pageH,
		Transform: Transform{
			Scale:      scale,
			TranslateX: PagePadding - bounds.X*scale,
			TranslateY: PagePadding - bounds.Y*scale,
		},
	})

	img, err := surface.Rasterize(ctx, int(pageW), int(pageH))
	if err != nil {
		return fmt.Errorf("failed to rasterize graph: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode raster image: %w", err)
	}

	doc := newDocument(orientation, pageW, pageH)
	doc.AddPage()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("graph", opts, &buf)
	doc.ImageOptions("graph", 0, 0, pageW, pageH, false, opts, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	logger.Info("[Export] PDF written", "pageWidth", pageW, "pageHeight", pageH, "nodes", len(nodes))
	return nil
}

// newDocument creates a PDF with a custom page size in points. fpdf
// takes the size in portrait convention and swaps it for landscape.
func newDocument(orientation geometry.Orientation, pageW, pageH float64) *fpdf.Fpdf {
	init := fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: fpdf.SizeType{Wd: pageW, Ht: pageH}}
	if orientation == geometry.OrientationHorizontal {
		init.OrientationStr = "L"
		init.Size = fpdf.SizeType{Wd: pageH, Ht: pageW}
	}
	return fpdf.NewCustom(&init)
}
