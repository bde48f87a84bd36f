package wfc

import (
	"errors"
	"fmt"
)

// DefaultNoiseAmplitude scales the tie-break noise drawn for each cell.
const DefaultNoiseAmplitude = 0.1

// Options configures a Collapser.
type Options[P comparable] struct {
	Space   Space[P]
	Catalog *Catalog
	Rules   *Adjacency
	Noise   NoiseSource

	// NoiseAmplitude multiplies the per-cell tie-break draw. Zero selects
	// DefaultNoiseAmplitude; use Noiseless for no tie-break noise.
	NoiseAmplitude float64

	// Noiseless skips the per-cell tie-break draws. Equal entropies are then
	// ordered by position index, and Noise only feeds tile sampling.
	Noiseless bool

	// Constraints run in order during Prepare.
	Constraints []Constraint[P]

	Tracer Tracer
}

// Result is the outcome of a completed solve.
type Result[P comparable] struct {
	Tiles   map[P]TileID
	History []P
}

// Stats counts solver work.
type Stats struct {
	Collapses  int
	Disallowed int
	Removals   int
	MaxStack   int
}

type removal struct {
	cell int
	tile int
}

// Collapser owns the cells, frontier and work stack of a single solve. It is
// not safe for concurrent use; separate Collapsers may share a Catalog and
// Adjacency.
type Collapser[P comparable] struct {
	space       Space[P]
	catalog     *Catalog
	noise       NoiseSource
	tracer      Tracer
	constraints []Constraint[P]

	dirs      int
	opposite  []Direction
	compat    [][][]int
	positions []P
	index     map[P]int
	neighbors []int

	cells    []*Cell
	frontier frontier
	removals []removal
	history  []int
	open     int

	prepared bool
	err      error
	stats    Stats
}

// New builds one cell per position of the space, with every tile allowed,
// and queues them all on the entropy frontier. Unless Noiseless is set, one
// noise value is drawn per cell, in Positions order.
func New[P comparable](opts Options[P]) (*Collapser[P], error) {
	switch {
	case opts.Space == nil:
		return nil, errors.New("wfc: nil space")
	case opts.Catalog == nil:
		return nil, errors.New("wfc: nil catalog")
	case opts.Rules == nil:
		return nil, errors.New("wfc: nil adjacency rules")
	case opts.Noise == nil:
		return nil, errors.New("wfc: nil noise source")
	case opts.NoiseAmplitude < 0:
		return nil, fmt.Errorf("wfc: negative noise amplitude %v", opts.NoiseAmplitude)
	}
	amplitude := opts.NoiseAmplitude
	if amplitude == 0 {
		amplitude = DefaultNoiseAmplitude
	}
	tieBreak := func() float64 { return opts.Noise() * amplitude }
	if opts.Noiseless {
		tieBreak = func() float64 { return 0 }
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = NopTracer{}
	}

	dirs := opts.Space.NumDirections()
	if opts.Rules.NumDirections() != dirs {
		return nil, fmt.Errorf("%w: rules use %d directions, space has %d",
			ErrInvalidDirection, opts.Rules.NumDirections(), dirs)
	}
	compat, err := compileRules(opts.Catalog, opts.Rules, dirs)
	if err != nil {
		return nil, err
	}

	c := &Collapser[P]{
		space:       opts.Space,
		catalog:     opts.Catalog,
		noise:       opts.Noise,
		tracer:      tracer,
		constraints: append([]Constraint[P](nil), opts.Constraints...),
		dirs:        dirs,
		opposite:    make([]Direction, dirs),
		compat:      compat,
		positions:   append([]P(nil), opts.Space.Positions()...),
	}
	for d := range c.opposite {
		c.opposite[d] = opts.Space.Opposite(Direction(d))
	}

	c.index = make(map[P]int, len(c.positions))
	for i, p := range c.positions {
		if _, dup := c.index[p]; dup {
			return nil, fmt.Errorf("wfc: duplicate position %v", p)
		}
		c.index[p] = i
	}
	c.neighbors = make([]int, len(c.positions)*dirs)
	for i, p := range c.positions {
		for d := 0; d < dirs; d++ {
			slot := i*dirs + d
			c.neighbors[slot] = -1
			q, ok := opts.Space.Neighbor(p, Direction(d))
			if !ok {
				continue
			}
			j, known := c.index[q]
			if !known {
				return nil, fmt.Errorf("%w: %v (neighbor of %v along %d)", ErrUnknownPosition, q, p, d)
			}
			c.neighbors[slot] = j
		}
	}

	template := make([]int, opts.Catalog.Len()*dirs)
	for t := range compat {
		for d := range compat[t] {
			template[t*dirs+d] = len(compat[t][d])
		}
	}
	c.cells = make([]*Cell, len(c.positions))
	for i := range c.positions {
		cell := NewCell(opts.Catalog, dirs, template, tieBreak())
		c.cells[i] = cell
		if cell.remaining > 0 {
			c.frontier.push(i, cell.Entropy(), cell.version)
		}
	}
	c.open = len(c.cells)
	return c, nil
}

func compileRules(catalog *Catalog, rules *Adjacency, dirs int) ([][][]int, error) {
	compat := make([][][]int, catalog.Len())
	for i := range compat {
		compat[i] = make([][]int, dirs)
	}
	for _, id := range rules.Tiles() {
		t, ok := catalog.Index(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d appears in adjacency rules", ErrUnknownTile, id)
		}
		for d := 0; d < dirs; d++ {
			list := rules.Compatible(id, Direction(d))
			idx := make([]int, 0, len(list))
			for _, other := range list {
				j, ok := catalog.Index(other)
				if !ok {
					return nil, fmt.Errorf("%w: %d appears in adjacency rules", ErrUnknownTile, other)
				}
				idx = append(idx, j)
			}
			compat[t][d] = idx
		}
	}
	return compat, nil
}

// Prepare removes tiles that can never fit next to an existing neighbor,
// then applies the constraints in registration order, propagating after each.
// It runs once; later calls return its outcome.
func (c *Collapser[P]) Prepare() error {
	if c.prepared {
		return c.err
	}
	c.prepared = true
	if err := c.structuralPass(); err != nil {
		return c.fail(err)
	}
	for _, constraint := range c.constraints {
		if err := c.applyConstraint(constraint); err != nil {
			return c.fail(err)
		}
	}
	return nil
}

func (c *Collapser[P]) structuralPass() error {
	for i, cell := range c.cells {
		if cell.remaining == 0 {
			return c.contradiction(i)
		}
		for t := range cell.allowed {
			if !cell.allowed[t] {
				continue
			}
			for d := 0; d < c.dirs; d++ {
				if c.neighbors[i*c.dirs+d] >= 0 && len(c.compat[t][d]) == 0 {
					if err := c.remove(i, t); err != nil {
						return err
					}
					break
				}
			}
		}
	}
	return c.propagate()
}

func (c *Collapser[P]) applyConstraint(constraint Constraint[P]) error {
	for _, ex := range constraint(c.space) {
		i, ok := c.index[ex.Position]
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownPosition, ex.Position)
		}
		cell := c.cells[i]
		for _, id := range ex.Tiles {
			t, ok := c.catalog.Index(id)
			if !ok {
				return fmt.Errorf("%w: %d", ErrUnknownTile, id)
			}
			if !cell.allowed[t] {
				continue
			}
			if err := c.remove(i, t); err != nil {
				return err
			}
		}
	}
	return c.propagate()
}

// Step collapses the lowest-entropy open cell and propagates the fallout.
// done is true once every cell is committed. Errors are terminal: every
// later call returns the same error.
func (c *Collapser[P]) Step() (done bool, err error) {
	if err := c.Prepare(); err != nil {
		return false, err
	}
	if c.err != nil {
		return false, c.err
	}
	if c.open == 0 {
		return true, nil
	}
	i, ok := c.frontier.popMinimum(c.live)
	if !ok {
		return false, c.fail(fmt.Errorf("wfc: frontier exhausted with %d open cells", c.open))
	}
	cell := c.cells[i]
	if cell.remaining == 0 {
		return false, c.fail(c.contradiction(i))
	}

	chosen := cell.chooseIndex(c.noise())
	excluded, err := cell.collapseIndex(chosen)
	if err != nil {
		return false, c.fail(fmt.Errorf("%w at %v", err, c.positions[i]))
	}
	c.open--
	c.history = append(c.history, i)
	c.stats.Collapses++
	c.tracer.CellCollapsed(c.positions[i], c.catalog.At(chosen).ID, len(c.history))

	for _, t := range excluded {
		if err := c.remove(i, t); err != nil {
			return false, c.fail(err)
		}
	}
	if err := c.propagate(); err != nil {
		return false, c.fail(err)
	}
	return c.open == 0, nil
}

// Run prepares the solve and steps it to completion or contradiction.
func (c *Collapser[P]) Run() (*Result[P], error) {
	for {
		done, err := c.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return c.Result()
		}
	}
}

// propagate drains the removal stack. For a removed tile T at P, every tile C
// that T permitted at P's neighbor N along d loses one enabler along the
// opposite of d; C is disallowed at N when its count reaches zero.
func (c *Collapser[P]) propagate() error {
	for len(c.removals) > 0 {
		last := len(c.removals) - 1
		r := c.removals[last]
		c.removals = c.removals[:last]
		c.stats.Removals++

		for d := 0; d < c.dirs; d++ {
			n := c.neighbors[r.cell*c.dirs+d]
			if n < 0 {
				continue
			}
			neighbor := c.cells[n]
			if neighbor.committed >= 0 {
				continue
			}
			od := c.opposite[d]
			for _, t := range c.compat[r.tile][d] {
				left, err := neighbor.counter(t).Decrement(od)
				if err != nil {
					return fmt.Errorf("%w: tile %d at %v", err, c.catalog.At(t).ID, c.positions[n])
				}
				if left == 0 && neighbor.allowed[t] {
					if err := c.remove(n, t); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// remove disallows tile t at cell i, records the removal for propagation and
// requeues the cell with its new entropy.
func (c *Collapser[P]) remove(i, t int) error {
	cell := c.cells[i]
	if err := cell.disallowIndex(t); err != nil {
		return fmt.Errorf("%w at %v", err, c.positions[i])
	}
	c.stats.Disallowed++
	c.tracer.TileDisallowed(c.positions[i], c.catalog.At(t).ID, cell.remaining)
	c.removals = append(c.removals, removal{cell: i, tile: t})
	if len(c.removals) > c.stats.MaxStack {
		c.stats.MaxStack = len(c.removals)
	}
	if cell.committed >= 0 {
		return nil
	}
	if cell.remaining == 0 {
		return c.contradiction(i)
	}
	c.frontier.push(i, cell.Entropy(), cell.version)
	return nil
}

func (c *Collapser[P]) live(i int, version uint32) bool {
	cell := c.cells[i]
	return cell.committed < 0 && cell.remaining > 0 && cell.version == version
}

func (c *Collapser[P]) contradiction(i int) error {
	c.tracer.Contradiction(c.positions[i])
	return &ContradictionError{Position: c.positions[i]}
}

func (c *Collapser[P]) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return c.err
}

// Result returns the committed tile per position and the commit order.
func (c *Collapser[P]) Result() (*Result[P], error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.Done() {
		return nil, fmt.Errorf("%w: %d cells open", ErrIncomplete, c.open)
	}
	res := &Result[P]{
		Tiles:   make(map[P]TileID, len(c.cells)),
		History: c.History(),
	}
	for i, cell := range c.cells {
		res.Tiles[c.positions[i]] = c.catalog.At(cell.committed).ID
	}
	return res, nil
}

// Done reports whether every cell is committed.
func (c *Collapser[P]) Done() bool { return c.prepared && c.err == nil && c.open == 0 }

// Err returns the terminal error, if any.
func (c *Collapser[P]) Err() error { return c.err }

// Len reports the number of cells.
func (c *Collapser[P]) Len() int { return len(c.cells) }

// Open reports how many cells are still uncommitted.
func (c *Collapser[P]) Open() int { return c.open }

// Positions returns the positions in cell order.
func (c *Collapser[P]) Positions() []P { return append([]P(nil), c.positions...) }

// Cell returns the cell at p.
func (c *Collapser[P]) Cell(p P) (*Cell, bool) {
	i, ok := c.index[p]
	if !ok {
		return nil, false
	}
	return c.cells[i], true
}

// CellAt returns the cell at index i of Positions.
func (c *Collapser[P]) CellAt(i int) *Cell { return c.cells[i] }

// History returns the positions in the order they were committed.
func (c *Collapser[P]) History() []P {
	out := make([]P, len(c.history))
	for k, i := range c.history {
		out[k] = c.positions[i]
	}
	return out
}

// HistoryIndex returns the commit order as indices into Positions.
func (c *Collapser[P]) HistoryIndex() []int { return append([]int(nil), c.history...) }

// Catalog returns the shared tile catalog.
func (c *Collapser[P]) Catalog() *Catalog { return c.catalog }

// Stats returns the work counters accumulated so far.
func (c *Collapser[P]) Stats() Stats { return c.stats }
