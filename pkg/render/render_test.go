package render

import (
	"context"
	"image/color"
	"testing"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/export"
)

type staticGraph struct {
	nodes []common.Node
	edges []common.Edge
}

func (g staticGraph) Graph() ([]common.Node, []common.Edge) {
	return g.nodes, g.edges
}

func TestRasterizeDrawsNodes(t *testing.T) {
	source := staticGraph{
		nodes: []common.Node{
			{ID: "a", Type: common.NodeTypePerson, Label: "Caesar", Position: common.Point{X: 20, Y: 20}},
			{ID: "b", Type: common.NodeTypePlace, Label: "Rome", Subtitle: "capital", Position: common.Point{X: 250, Y: 150}},
		},
		edges: []common.Edge{
			{ID: "e1", Source: "a", Target: "b", Type: "related-to", Label: "ruled"},
		},
	}
	canvas, err := NewCanvas(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := canvas.Rasterize(context.Background(), 600, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := img.Bounds().Dx(); got != 600 {
		t.Errorf("expected width 600, got %d", got)
	}

	// Something must have been drawn over the white background.
	painted := false
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 400 && !painted; y += 4 {
		for x := 0; x < 600; x += 4 {
			if img.At(x, y) != white {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("raster image is entirely blank")
	}
}

func TestRasterizeRejectsInvalidSize(t *testing.T) {
	canvas, err := NewCanvas(staticGraph{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := canvas.Rasterize(context.Background(), 0, 100); err == nil {
		t.Error("expected an error for zero width")
	}
	if _, err := canvas.Rasterize(context.Background(), 100, -1); err == nil {
		t.Error("expected an error for negative height")
	}
}

func TestViewportRoundTrip(t *testing.T) {
	canvas, err := NewCanvas(staticGraph{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := export.Viewport{Width: 300, Height: 200, Transform: export.Transform{Scale: 2, TranslateX: 10}}
	canvas.SetViewport(v)
	if got := canvas.Viewport(); got != v {
		t.Errorf("viewport round trip failed: %+v", got)
	}
}
