package pathstore

import (
	"bytes"
	"context"
	"slices"

	"github.com/specialistvlad/railpath/internal/pathfinding"
)

// Memory keeps the encoded graph in memory. It is used when persistence is
// disabled and in tests.
type Memory struct {
	tracing
	data []byte
}

// NewMemory returns an empty memory store.
func NewMemory(opts ...Option) *Memory { return &Memory{tracing: newTracing(opts)} }

func (m *Memory) Load(ctx context.Context, g *pathfinding.Graph) error {
	return m.traced(ctx, "memory", "load", func(context.Context) error {
		if m.data == nil {
			return ErrNotFound
		}
		return g.Decode(bytes.NewReader(m.data))
	})
}

func (m *Memory) Save(ctx context.Context, g *pathfinding.Graph) error {
	return m.traced(ctx, "memory", "save", func(context.Context) error {
		var buf bytes.Buffer
		if err := g.Encode(&buf); err != nil {
			return err
		}
		m.data = slices.Clip(buf.Bytes())
		g.MarkSaved()
		return nil
	})
}

func (m *Memory) Close() error { return nil }
