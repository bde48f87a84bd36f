package wfc

import "container/heap"

type frontierEntry struct {
	cell    int
	entropy float64
	version uint32
}

// frontier is a min-heap of cells keyed by the entropy they had when pushed.
// Entries are never updated in place: a changed cell is pushed again and the
// outdated entry is discarded when it surfaces.
type frontier struct {
	entries []frontierEntry
}

func (f *frontier) Len() int { return len(f.entries) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.entries[i], f.entries[j]
	if a.entropy != b.entropy {
		return a.entropy < b.entropy
	}
	return a.cell < b.cell
}

func (f *frontier) Swap(i, j int) { f.entries[i], f.entries[j] = f.entries[j], f.entries[i] }

func (f *frontier) Push(x any) { f.entries = append(f.entries, x.(frontierEntry)) }

func (f *frontier) Pop() any {
	last := len(f.entries) - 1
	e := f.entries[last]
	f.entries = f.entries[:last]
	return e
}

func (f *frontier) push(cell int, entropy float64, version uint32) {
	heap.Push(f, frontierEntry{cell: cell, entropy: entropy, version: version})
}

// popMinimum returns the lowest-entropy entry that live accepts, dropping
// everything it rejects on the way. ok is false once the heap is exhausted.
func (f *frontier) popMinimum(live func(cell int, version uint32) bool) (cell int, ok bool) {
	for f.Len() > 0 {
		e := heap.Pop(f).(frontierEntry)
		if live(e.cell, e.version) {
			return e.cell, true
		}
	}
	return -1, false
}
