package pieces

import (
	"fmt"
	"sort"

	"hexweave/pkg/wfc"
)

// SquarePipes covers every N/E/S/W combination, so a bordered grid always
// has a completion.
func SquarePipes() *Set {
	return mustSet("square", 4, []piece{
		{0b0000, 6, ' '},
		{0b1010, 4, '│'},
		{0b0101, 4, '─'},
		{0b1100, 3, '└'},
		{0b0110, 3, '┌'},
		{0b0011, 3, '┐'},
		{0b1001, 3, '┘'},
		{0b1110, 1, '├'},
		{0b0111, 1, '┬'},
		{0b1011, 1, '┤'},
		{0b1101, 1, '┴'},
		{0b1111, 1, '┼'},
		{0b1000, 0.5, '╵'},
		{0b0100, 0.5, '╶'},
		{0b0010, 0.5, '╷'},
		{0b0001, 0.5, '╴'},
	})
}

// OctoPipes runs over all eight neighbors, clockwise from the top-left.
func OctoPipes() *Set {
	return mustSet("octo", 8, []piece{
		{0b00000000, 2, ' '},
		{0b00001000, 1, '▗'},
		{0b10001000, 8, '╲'},
		{0b00001001, 4, '┐'},
		{0b01001000, 4, '└'},
		{0b10000100, 4, '╮'},
		{0b10010000, 4, '╰'},
		{0b00010001, 4, '─'},
		{0b01000100, 4, '│'},
		{0b10000000, 1, '▘'},
	})
}

// HexPipes is a deliberately sparse hex set: straights, wide bends and
// three-way junctions. Some neighborhoods have no completion.
func HexPipes() *Set {
	return mustSet("hex", 6, []piece{
		{0b000000, 4, '·'},
		{0b100100, 3, '─'},
		{0b010010, 3, '╲'},
		{0b001001, 3, '╱'},
		{0b101000, 2, '╭'},
		{0b010100, 2, '╮'},
		{0b001010, 2, '<'},
		{0b000101, 2, '╯'},
		{0b100010, 2, '╰'},
		{0b010001, 2, '>'},
		{0b101010, 1, 'Y'},
		{0b010101, 1, 'λ'},
	})
}

type piece struct {
	mask   uint
	weight float64
	glyph  rune
}

func mustSet(name string, n int, defs []piece) *Set {
	ps := make([]Piece, len(defs))
	for i, d := range defs {
		ps[i] = Piece{ID: wfc.TileID(i), Connections: d.mask, Weight: d.weight, Glyph: d.glyph}
	}
	s, err := NewSet(name, n, ps...)
	if err != nil {
		panic(err)
	}
	return s
}

var builtin = map[string]func() *Set{
	"square": SquarePipes,
	"octo":   OctoPipes,
	"hex":    HexPipes,
}

// ByName returns a fresh copy of a built-in set.
func ByName(name string) (*Set, error) {
	f, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("pieces: unknown set %q (have %v)", name, Names())
	}
	return f(), nil
}

// Names lists the built-in sets.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
