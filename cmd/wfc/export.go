package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"hexweave/internal/attempt"
	"hexweave/internal/pieces"
	"hexweave/pkg/wfc"
)

type document struct {
	Space        string `json:"space"`
	Set          string `json:"set"`
	Connectivity int    `json:"connectivity"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Wrap         bool   `json:"wrap,omitempty"`
	Radius       int    `json:"radius,omitempty"`

	Seed    int64     `json:"seed"`
	Attempt int       `json:"attempt"`
	RunID   string    `json:"run_id"`
	Stats   wfc.Stats `json:"stats"`

	Cells   []cellDoc `json:"cells"`
	History [][]int   `json:"history"`
}

type cellDoc struct {
	Pos         []int      `json:"pos"`
	Tile        wfc.TileID `json:"tile"`
	Connections uint       `json:"connections"`
	Glyph       string     `json:"glyph"`
}

// newDocument lists cells in solver position order.
func newDocument[P comparable](space string, set *pieces.Set, out *attempt.Outcome[P], coords func(P) []int) *document {
	doc := &document{
		Space:        space,
		Set:          set.Name(),
		Connectivity: set.Directions(),
		Seed:         out.Seed,
		Attempt:      out.Attempt,
		RunID:        out.RunID.String(),
		Stats:        out.Stats,
	}
	for _, p := range out.Collapser.Positions() {
		id := out.Result.Tiles[p]
		piece, _ := set.Get(id)
		doc.Cells = append(doc.Cells, cellDoc{
			Pos:         coords(p),
			Tile:        id,
			Connections: piece.Connections,
			Glyph:       string(set.Glyph(id)),
		})
	}
	doc.History = make([][]int, len(out.Result.History))
	for i, p := range out.Result.History {
		doc.History[i] = coords(p)
	}
	return doc
}

func writeDocument(path string, doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode map")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}
