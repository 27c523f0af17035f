// Package render rasterizes a graph onto an image surface. It backs
// the PDF export path with an offscreen canvas.
package render

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/export"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
)

const (
	labelFontSize    = 13
	subtitleFontSize = 10
	cornerRadius     = 8
	edgeWidth        = 1.5
)

// GraphSource supplies the nodes and edges to draw. The graph store
// satisfies it.
type GraphSource interface {
	Graph() ([]common.Node, []common.Edge)
}

// Canvas is an offscreen drawing surface for a graph. It implements
// the export Surface interface.
type Canvas struct {
	mu       sync.Mutex
	source   GraphSource
	viewport export.Viewport

	labelFace    font.Face
	subtitleFace font.Face
}

// NewCanvas creates a canvas over the given graph source.
func NewCanvas(source GraphSource) (*Canvas, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Canvas{
		source:       source,
		viewport:     export.Viewport{Width: 1280, Height: 800, Transform: export.Transform{Scale: 1}},
		labelFace:    truetype.NewFace(ttf, &truetype.Options{Size: labelFontSize}),
		subtitleFace: truetype.NewFace(ttf, &truetype.Options{Size: subtitleFontSize}),
	}, nil
}

// Viewport returns the current viewport.
func (c *Canvas) Viewport() export.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// SetViewport replaces the viewport.
func (c *Canvas) SetViewport(v export.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = v
}

// Rasterize draws the graph into a fresh image of the given pixel
// size, applying the viewport transform.
func (c *Canvas) Rasterize(ctx context.Context, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	transform := c.viewport.Transform
	c.mu.Unlock()

	nodes, edges := c.source.Graph()

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.Translate(transform.TranslateX, transform.TranslateY)
	scale := transform.Scale
	if scale <= 0 {
		scale = 1
	}
	dc.Scale(scale, scale)

	centers := make(map[string]common.Point, len(nodes))
	for _, n := range nodes {
		w, h := geometry.NodeSize(n)
		centers[n.ID] = common.Point{X: n.Position.X + w/2, Y: n.Position.Y + h/2}
	}

	for _, e := range edges {
		c.drawEdge(dc, e, centers)
	}
	for _, n := range nodes {
		c.drawNode(dc, n)
	}

	return dc.Image(), nil
}

func (c *Canvas) drawEdge(dc *gg.Context, e common.Edge, centers map[string]common.Point) {
	from, okFrom := centers[e.Source]
	to, okTo := centers[e.Target]
	if !okFrom || !okTo {
		return
	}

	style := common.StyleForEdgeType(e.Type)
	dc.SetHexColor(style.Color)
	dc.SetLineWidth(edgeWidth)
	if style.Dashed {
		dc.SetDash(6, 4)
	} else {
		dc.SetDash()
	}
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
	dc.SetDash()

	if e.Label != "" {
		dc.SetFontFace(c.subtitleFace)
		dc.SetHexColor("#475569")
		dc.DrawStringAnchored(e.Label, (from.X+to.X)/2, (from.Y+to.Y)/2-4, 0.5, 0.5)
	}
}

func (c *Canvas) drawNode(dc *gg.Context, n common.Node) {
	w, h := geometry.NodeSize(n)
	x, y := n.Position.X, n.Position.Y
	style := common.StyleForNodeType(n.Type)

	dc.SetHexColor("#ffffff")
	dc.DrawRoundedRectangle(x, y, w, h, cornerRadius)
	dc.FillPreserve()
	dc.SetHexColor(style.Color)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetFontFace(c.labelFace)
	dc.SetHexColor("#0f172a")
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if n.Subtitle == "" {
		dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
		return
	}
	dc.DrawStringAnchored(label, x+w/2, y+h/2-7, 0.5, 0.5)
	dc.SetFontFace(c.subtitleFace)
	dc.SetHexColor("#64748b")
	dc.DrawStringAnchored(n.Subtitle, x+w/2, y+h/2+9, 0.5, 0.5)
}
