package engine

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// PVLine is the principal variation collected on the way back up the tree.
type PVLine struct {
	Moves []dragontoothmg.Move
}

// Update sets this line to move followed by the child's line.
func (pv *PVLine) Update(move dragontoothmg.Move, child *PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// BestMove returns the first move of the line, or 0 if the line is empty.
func (pv *PVLine) BestMove() dragontoothmg.Move {
	if len(pv.Moves) == 0 {
		return dragontoothmg.Move(0)
	}
	return pv.Moves[0]
}

// Clone deep-copies the line; iterative deepening keeps the last completed
// iteration's PV while the next one scribbles over the working line.
func (pv *PVLine) Clone() PVLine {
	out := PVLine{Moves: make([]dragontoothmg.Move, len(pv.Moves))}
	copy(out.Moves, pv.Moves)
	return out
}

func (pv *PVLine) String() string {
	var sb strings.Builder
	for i, m := range pv.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
