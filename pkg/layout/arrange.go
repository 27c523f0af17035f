package layout

import (
	"math"
	"math/rand"
	"time"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
)

// Arranger places freshly extracted entities with a bounded-column grid per
// type bucket. It is a cheap placement heuristic, not a layout solve: the
// only non-determinism is a small jitter term that keeps coincident
// duplicates from stacking perfectly.
type Arranger struct {
	CellWidth  float64
	CellHeight float64
	Jitter     float64

	rng *rand.Rand
}

// NewArranger creates an arranger with the default spacing constants.
func NewArranger() *Arranger {
	return &Arranger{
		CellWidth:  180,
		CellHeight: 140,
		Jitter:     10,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// gridColumns bounds the per-bucket column count to clamp(ceil(sqrt(n)), 2, 4).
func gridColumns(n int) int {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 2 {
		cols = 2
	}
	if cols > 4 {
		cols = 4
	}
	return cols
}

func (a *Arranger) jitter() float64 {
	if a.Jitter == 0 || a.rng == nil {
		return 0
	}
	return (a.rng.Float64()*2 - 1) * a.Jitter
}

// ArrangeByType returns top-left positions keyed by entity ID. Entities are
// bucketed by type in first-seen order; each bucket fills a grid row by row,
// advancing to a new row once the column threshold is reached. Buckets stack
// vertically beneath each other.
func (a *Arranger) ArrangeByType(entities []common.Entity) map[string]common.Point {
	buckets := make(map[common.NodeType][]common.Entity)
	bucketOrder := make([]common.NodeType, 0)
	for _, e := range entities {
		if _, seen := buckets[e.Type]; !seen {
			bucketOrder = append(bucketOrder, e.Type)
		}
		buckets[e.Type] = append(buckets[e.Type], e)
	}

	positions := make(map[string]common.Point, len(entities))
	originY := 0.0
	for _, t := range bucketOrder {
		bucket := buckets[t]
		cols := gridColumns(len(bucket))

		rows := 0
		for i, e := range bucket {
			col := i % cols
			row := i / cols
			positions[e.ID] = common.Point{
				X: float64(col)*a.CellWidth + a.jitter(),
				Y: originY + float64(row)*a.CellHeight + a.jitter(),
			}
			rows = row + 1
		}

		originY += float64(rows) * a.CellHeight
	}

	return positions
}
