// Package book answers opening-theory lookups over a built-in ECO line
// table, so the engine can play well-trodden opening moves without burning
// clock on search.
package book

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// theory is the repertoire: main lines in UCI coordinates. Lookups prefer
// the deepest line still matching the game, so sidelines only answer once
// the main lines have run out.
var theory = []struct {
	eco   string
	name  string
	moves string
}{
	{"C65", "Ruy Lopez, Berlin Defense", "e2e4 e7e5 g1f3 b8c6 f1b5 g8f6 e1g1 f6e4 d2d4 e4d6 b5c6 d7c6 d4e5 d6f5 d1d8 e8d8"},
	{"C84", "Ruy Lopez, Closed", "e2e4 e7e5 g1f3 b8c6 f1b5 a7a6 b5a4 g8f6 e1g1 f8e7 f1e1 b7b5 a4b3 d7d6 c2c3 e8g8 h2h3"},
	{"C50", "Italian Game, Giuoco Pianissimo", "e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d3 d7d6 e1g1 e8g8"},
	{"C55", "Italian Game, Two Knights Defense", "e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d3 f8c5 c2c3 d7d6"},
	{"C51", "Evans Gambit", "e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 b2b4 c5b4 c2c3 b4a5 d2d4"},
	{"C45", "Scotch Game, Mieses Variation", "e2e4 e7e5 g1f3 b8c6 d2d4 e5d4 f3d4 g8f6 d4c6 b7c6 e4e5 d8e7 d1e2 f6d5 c2c4"},
	{"C42", "Petroff Defense, Classical", "e2e4 e7e5 g1f3 g8f6 f3e5 d7d6 e5f3 f6e4 d2d4 d6d5 f1d3"},
	{"C41", "Philidor Defense", "e2e4 e7e5 g1f3 d7d6 d2d4 e5d4 f3d4 g8f6 b1c3 f8e7"},
	{"C48", "Four Knights, Spanish Variation", "e2e4 e7e5 g1f3 b8c6 b1c3 g8f6 f1b5 f8b4 e1g1 e8g8 d2d3 d7d6 c1g5"},
	{"C29", "Vienna Gambit", "e2e4 e7e5 b1c3 g8f6 f2f4 d7d5 f4e5 f6e4 g1f3"},
	{"C39", "King's Gambit, Kieseritzky", "e2e4 e7e5 f2f4 e5f4 g1f3 g7g5 h2h4 g5g4 f3e5"},
	{"B90", "Sicilian, Najdorf, English Attack", "e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3 a7a6 c1e3 e7e5 d4b3 c8e6"},
	{"B76", "Sicilian, Dragon, Yugoslav Attack", "e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3 g7g6 c1e3 f8g7 f2f3 e8g8 d1d2 b8c6 f1c4"},
	{"B33", "Sicilian, Sveshnikov", "e2e4 c7c5 g1f3 b8c6 d2d4 c5d4 f3d4 g8f6 b1c3 e7e5 d4b5 d7d6 c1g5 a7a6 b5a3 b7b5"},
	{"B57", "Sicilian, Classical", "e2e4 c7c5 g1f3 b8c6 d2d4 c5d4 f3d4 g8f6 b1c3 d7d6"},
	{"B44", "Sicilian, Taimanov", "e2e4 c7c5 g1f3 e7e6 d2d4 c5d4 f3d4 b8c6 d4b5 d7d6"},
	{"B42", "Sicilian, Kan", "e2e4 c7c5 g1f3 e7e6 d2d4 c5d4 f3d4 a7a6 f1d3"},
	{"B22", "Sicilian, Alapin", "e2e4 c7c5 c2c3 g8f6 e4e5 f6d5 d2d4 c5d4 g1f3"},
	{"B23", "Sicilian, Closed", "e2e4 c7c5 b1c3 b8c6 g2g3 g7g6 f1g2 f8g7 d2d3 d7d6"},
	{"C11", "French, Steinitz Variation", "e2e4 e7e6 d2d4 d7d5 b1c3 g8f6 e4e5 f6d7 f2f4 c7c5 g1f3 b8c6"},
	{"C18", "French, Winawer", "e2e4 e7e6 d2d4 d7d5 b1c3 f8b4 e4e5 c7c5 a2a3 b4c3 b2c3 g8e7"},
	{"C03", "French, Tarrasch", "e2e4 e7e6 d2d4 d7d5 b1d2 c7c5 e4d5 e6d5 g1f3 b8c6 f1b5"},
	{"C02", "French, Advance", "e2e4 e7e6 d2d4 d7d5 e4e5 c7c5 c2c3 b8c6 g1f3 d8b6 a2a3"},
	{"B19", "Caro-Kann, Classical", "e2e4 c7c6 d2d4 d7d5 b1c3 d5e4 c3e4 c8f5 e4g3 f5g6 h2h4 h7h6 g1f3 b8d7"},
	{"B12", "Caro-Kann, Advance, Short System", "e2e4 c7c6 d2d4 d7d5 e4e5 c8f5 g1f3 e7e6 f1e2 c6c5"},
	{"B13", "Caro-Kann, Exchange", "e2e4 c7c6 d2d4 d7d5 e4d5 c6d5 f1d3 b8c6 c2c3 g8f6 c1f4"},
	{"B09", "Pirc, Austrian Attack", "e2e4 d7d6 d2d4 g8f6 b1c3 g7g6 f2f4 f8g7 g1f3 e8g8 f1d3"},
	{"B06", "Modern Defense", "e2e4 g7g6 d2d4 f8g7 b1c3 d7d6 f2f4"},
	{"B04", "Alekhine Defense, Modern", "e2e4 g8f6 e4e5 f6d5 d2d4 d7d6 g1f3 c8g4 f1e2 e7e6"},
	{"B01", "Scandinavian, Classical", "e2e4 d7d5 e4d5 d8d5 b1c3 d5a5 d2d4 g8f6 g1f3 c7c6 f1c4 c8f5"},
	{"D58", "Queen's Gambit Declined, Tartakower", "d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 c1g5 f8e7 e2e3 e8g8 g1f3 h7h6 g5h4 b7b6"},
	{"D27", "Queen's Gambit Accepted, Classical", "d2d4 d7d5 c2c4 d5c4 g1f3 g8f6 e2e3 e7e6 f1c4 c7c5 e1g1 a7a6"},
	{"D17", "Slav, Czech Variation", "d2d4 d7d5 c2c4 c7c6 g1f3 g8f6 b1c3 d5c4 a2a4 c8f5 e2e3 e7e6 f1c4 f8b4"},
	{"D47", "Semi-Slav, Meran", "d2d4 d7d5 c2c4 c7c6 g1f3 g8f6 b1c3 e7e6 e2e3 b8d7 f1d3 d5c4 d3c4 b7b5"},
	{"E53", "Nimzo-Indian, Main Line", "d2d4 g8f6 c2c4 e7e6 b1c3 f8b4 e2e3 e8g8 f1d3 d7d5 g1f3 c7c5 e1g1 b8c6"},
	{"E17", "Queen's Indian, Fianchetto", "d2d4 g8f6 c2c4 e7e6 g1f3 b7b6 g2g3 c8b7 f1g2 f8e7 e1g1 e8g8 b1c3 f6e4"},
	{"E97", "King's Indian, Mar del Plata", "d2d4 g8f6 c2c4 g7g6 b1c3 f8g7 e2e4 d7d6 g1f3 e8g8 f1e2 e7e5 e1g1 b8c6 d4d5 c6e7"},
	{"D87", "Grunfeld, Exchange", "d2d4 g8f6 c2c4 g7g6 b1c3 d7d5 c4d5 f6d5 e2e4 d5c3 b2c3 f8g7 f1c4 c7c5 g1e2 b8c6 c1e3 e8g8"},
	{"A70", "Modern Benoni, Classical", "d2d4 g8f6 c2c4 c7c5 d4d5 e7e6 b1c3 e6d5 c4d5 d7d6 e2e4 g7g6 g1f3 f8g7 f1e2 e8g8 e1g1"},
	{"A58", "Benko Gambit Accepted", "d2d4 g8f6 c2c4 c7c5 d4d5 b7b5 c4b5 a7a6 b5a6 c8a6"},
	{"E06", "Catalan, Closed", "d2d4 g8f6 c2c4 e7e6 g2g3 d7d5 f1g2 f8e7 g1f3 e8g8 e1g1 d5c4 d1c2 a7a6 c2c4 b7b5 c4c2 c8b7"},
	{"D02", "London System", "d2d4 d7d5 c1f4 g8f6 e2e3 c7c5 c2c3 b8c6 b1d2 e7e6 g1f3 f8d6 f4g3 e8g8"},
	{"A45", "Trompowsky Attack", "d2d4 g8f6 c1g5 f6e4 g5f4 c7c5 f2f3 d8a5 c2c3 e4f6 d4d5"},
	{"A97", "Dutch, Leningrad", "d2d4 f7f5 g2g3 g8f6 f1g2 g7g6 g1f3 f8g7 e1g1 e8g8 c2c4 d7d6 b1c3"},
	{"A29", "English, Reversed Dragon", "c2c4 e7e5 b1c3 g8f6 g1f3 b8c6 g2g3 d7d5 c4d5 f6d5 f1g2 d5b6 e1g1 f8e7 d2d3 e8g8"},
	{"A36", "English, Symmetrical", "c2c4 c7c5 b1c3 b8c6 g2g3 g7g6 f1g2 f8g7 g1f3 g8f6 e1g1 e8g8"},
	{"A14", "Reti, Neo-Catalan", "g1f3 d7d5 c2c4 e7e6 g2g3 g8f6 f1g2 f8e7 e1g1 e8g8 b2b3 c7c5 c1b2 b8c6"},
	{"A03", "Bird's Opening", "f2f4 d7d5 g1f3 g8f6 e2e3 g7g6 f1e2 f8g7 e1g1 e8g8"},
}

type Book struct {
	lines [][]string
}

func New() *Book {
	b := &Book{lines: make([][]string, len(theory))}
	for i, t := range theory {
		b.lines[i] = strings.Fields(t.moves)
	}
	return b
}

// Move returns a theory continuation for the game reached by uciMoves from
// the starting position, along with the opening's name. An empty reply means
// out of book.
func (bk *Book) Move(uciMoves []string) (string, string, error) {
	game := chess.NewGame()
	notation := chess.UCINotation{}
	for _, s := range uciMoves {
		move, err := notation.Decode(game.Position(), s)
		if err != nil {
			return "", "", fmt.Errorf("book: bad move %q: %w", s, err)
		}
		if err := game.Move(move); err != nil {
			return "", "", fmt.Errorf("book: illegal move %q: %w", s, err)
		}
	}

	best := -1
	for i, line := range bk.lines {
		if len(line) <= len(uciMoves) || !samePrefix(line, uciMoves) {
			continue
		}
		if best < 0 || len(line) > len(bk.lines[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", "", nil
	}
	t := theory[best]
	return bk.lines[best][len(uciMoves)], t.eco + " " + t.name, nil
}

func samePrefix(line, played []string) bool {
	for i := range played {
		if line[i] != played[i] {
			return false
		}
	}
	return true
}
