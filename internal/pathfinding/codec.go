package pathfinding

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

const (
	codecMagic   uint32 = 0x52504748 // "RPGH"
	codecVersion uint8  = 2

	maxDecodedNodes = 1 << 22
	maxDecodedEdges = 1 << 16
	maxDecodedNames = 1 << 10

	maxNameLength = math.MaxUint16
)

type encoder struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func (e *encoder) write(p []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
}

func (e *encoder) u8(v uint8) { e.write([]byte{v}) }

func (e *encoder) u32(v uint32) {
	binary.BigEndian.PutUint32(e.buf[:], v)
	e.write(e.buf[:4])
}

func (e *encoder) i32(v int) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		e.fail(fmt.Errorf("value %d overflows int32", v))
		return
	}
	e.u32(uint32(int32(v)))
}

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) str(s string) {
	if len(s) > maxNameLength {
		e.fail(fmt.Errorf("string of %d bytes is too long", len(s)))
		return
	}
	binary.BigEndian.PutUint16(e.buf[:], uint16(len(s)))
	e.write(e.buf[:2])
	e.write([]byte(s))
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Encode writes every node and connection of the graph as a zlib compressed
// stream. Node indices are reassigned in world name order, then creation
// order.
func (g *Graph) Encode(w io.Writer) error {
	var nodes []*Node
	for _, wd := range g.Worlds() {
		nodes = append(nodes, wd.nodes...)
	}
	for i, n := range nodes {
		n.index = i
	}

	zw := zlib.NewWriter(w)
	enc := &encoder{w: bufio.NewWriter(zw)}
	enc.u32(codecMagic)
	enc.u8(codecVersion)
	enc.i32(len(nodes))
	for _, n := range nodes {
		enc.i32(len(n.names))
		for _, name := range n.names {
			enc.str(name)
		}
		enc.str(n.location.World)
		enc.i32(n.location.X)
		enc.i32(n.location.Y)
		enc.i32(n.location.Z)
		enc.boolean(n.railSwitchable)
	}
	for _, n := range nodes {
		enc.i32(len(n.neighbours))
		for _, c := range n.neighbours {
			enc.i32(g.nodes[c.Destination].index)
			enc.i32(c.Distance)
			enc.u8(c.Direction.Notch())
		}
	}
	if enc.err == nil {
		enc.err = enc.w.Flush()
	}
	if err := zw.Close(); enc.err == nil {
		enc.err = err
	}
	if enc.err != nil {
		return fmt.Errorf("encode graph: %w", enc.err)
	}
	return nil
}

type decoder struct {
	r   *bufio.Reader
	buf [4]byte
	err error
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	_, d.err = io.ReadFull(d.r, d.buf[:n])
	return d.buf[:n]
}

func (d *decoder) u8() uint8   { return d.read(1)[0] }
func (d *decoder) u32() uint32 { return binary.BigEndian.Uint32(d.read(4)) }
func (d *decoder) i32() int    { return int(int32(d.u32())) }

func (d *decoder) str() string {
	n := binary.BigEndian.Uint16(d.read(2))
	if d.err != nil {
		return ""
	}
	b := make([]byte, n)
	_, d.err = io.ReadFull(d.r, b)
	return string(b)
}

type decodedNode struct {
	location   railloc.Location
	names      []string
	switchable bool
	edges      []Connection
}

func (dn *decodedNode) anonymous() bool {
	return len(dn.names) == 1 && dn.names[0] == dn.location.String()
}

// Decode replaces the contents of the graph with a stream written by Encode.
// The whole stream is read and validated first; on any error the graph is
// left unchanged and the error wraps ErrCorruptGraph. Worlds that are not
// registered yet are created without a network. Decoded nodes are not
// rediscovered.
func (g *Graph) Decode(r io.Reader) error {
	nodes, err := decodeNodes(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptGraph, err)
	}

	g.ClearAll()
	byIndex := make([]*Node, len(nodes))
	for i, dn := range nodes {
		w := g.world(dn.location.World)
		n := w.insert(dn.location)
		n.index = i
		n.railSwitchable = dn.switchable
		if !dn.anonymous() {
			if locName := dn.location.String(); w.byName[locName] == n {
				delete(w.byName, locName)
			}
			n.names = dn.names
			for _, name := range dn.names {
				w.byName[name] = n
			}
		}
		byIndex[i] = n
	}
	for i, dn := range nodes {
		n := byIndex[i]
		for _, e := range dn.edges {
			dest := byIndex[e.Destination]
			n.neighbourIdx[dest.id] = len(n.neighbours)
			n.neighbours = append(n.neighbours, Connection{
				Destination: dest.id,
				Distance:    e.Distance,
				Direction:   e.Direction,
			})
		}
	}
	for _, w := range g.worlds {
		w.cache.Purge()
		g.metrics.NodeCount(w.name, len(w.nodes))
	}
	g.dirty = false
	g.logger.Debug("Graph decoded", "nodes", len(nodes))
	return nil
}

// decodeNodes reads a whole stream. Edge destinations are node indices.
func decodeNodes(r io.Reader) ([]decodedNode, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	d := &decoder{r: bufio.NewReader(zr)}

	if magic := d.u32(); d.err == nil && magic != codecMagic {
		return nil, fmt.Errorf("bad magic %#x", magic)
	}
	if version := d.u8(); d.err == nil && version != codecVersion {
		return nil, fmt.Errorf("unsupported version %d", version)
	}
	count := d.i32()
	if d.err != nil {
		return nil, truncated(d.err)
	}
	if count < 0 || count > maxDecodedNodes {
		return nil, fmt.Errorf("node count %d out of range", count)
	}

	nodes := make([]decodedNode, count)
	seenLocation := make(map[railloc.Location]struct{}, count)
	seenName := make(map[string]struct{}, count)
	for i := range nodes {
		nameCount := d.i32()
		if d.err != nil {
			return nil, truncated(d.err)
		}
		if nameCount < 1 || nameCount > maxDecodedNames {
			return nil, fmt.Errorf("node %d: name count %d out of range", i, nameCount)
		}
		names := make([]string, nameCount)
		for j := range names {
			names[j] = d.str()
		}
		world := d.str()
		x, y, z := d.i32(), d.i32(), d.i32()
		switchable := d.u8()
		if d.err != nil {
			return nil, truncated(d.err)
		}
		if world == "" || switchable > 1 {
			return nil, fmt.Errorf("node %d is malformed", i)
		}
		loc := railloc.New(world, x, y, z)
		if _, dup := seenLocation[loc]; dup {
			return nil, fmt.Errorf("duplicate node at %s", loc)
		}
		seenLocation[loc] = struct{}{}
		dn := decodedNode{location: loc, names: names, switchable: switchable == 1}
		// An anonymous node's location name may also be held by a named node
		// created before it, so only explicit names must be unique.
		if !dn.anonymous() {
			for _, name := range names {
				key := world + "\x00" + name
				if _, dup := seenName[key]; dup || validateName(name) != nil {
					return nil, fmt.Errorf("node %d has an invalid or duplicate name %q", i, name)
				}
				seenName[key] = struct{}{}
			}
		}
		nodes[i] = dn
	}

	for i := range nodes {
		edges := d.i32()
		if d.err != nil {
			return nil, truncated(d.err)
		}
		if edges < 0 || edges > maxDecodedEdges {
			return nil, fmt.Errorf("node %d: edge count %d out of range", i, edges)
		}
		seenDest := make(map[int]struct{}, edges)
		for j := 0; j < edges; j++ {
			dest, distance, notch := d.i32(), d.i32(), d.u8()
			if d.err != nil {
				return nil, truncated(d.err)
			}
			if dest < 0 || dest >= count || dest == i {
				return nil, fmt.Errorf("node %d: edge to invalid index %d", i, dest)
			}
			if nodes[dest].location.World != nodes[i].location.World {
				return nil, fmt.Errorf("node %d: edge crosses worlds", i)
			}
			if _, dup := seenDest[dest]; dup {
				return nil, fmt.Errorf("node %d: duplicate edge to %d", i, dest)
			}
			seenDest[dest] = struct{}{}
			if distance < 0 {
				return nil, fmt.Errorf("node %d: negative distance %d", i, distance)
			}
			dir, err := track.FromNotch(notch)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			nodes[i].edges = append(nodes[i].edges, Connection{
				Destination: NodeID(dest),
				Distance:    distance,
				Direction:   dir,
			})
		}
	}
	if d.err != nil {
		return nil, truncated(d.err)
	}
	return nodes, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("truncated data: %w", err)
	}
	return err
}
