package console

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

func render(snapshot entity.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("\n   ")
	for c := 0; c < snapshot.Columns; c++ {
		fmt.Fprintf(&sb, " %-3d", c)
	}
	sb.WriteString("\n")

	for r, row := range snapshot.Cells {
		if r > 0 {
			sb.WriteString("   " + strings.TrimSuffix(strings.Repeat("---+", snapshot.Columns), "+") + "\n")
		}

		fmt.Fprintf(&sb, "%-3d", r)
		for c, cell := range row {
			if c > 0 {
				sb.WriteString("|")
			}
			fmt.Fprintf(&sb, " %-2s", cell)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "score: P1 %d - %d P2\n", snapshot.Scores.P1, snapshot.Scores.P2)

	switch snapshot.Phase {
	case entity.PhaseInRound:
		fmt.Fprintf(&sb, "%s to move\n", snapshot.CurrentPlayer)
	case entity.PhaseRoundWon:
		fmt.Fprintf(&sb, "%s wins the round!\n", snapshot.RoundWinner)
	case entity.PhaseRoundTied:
		sb.WriteString("it's a tie!\n")
	case entity.PhaseMatchOver:
		fmt.Fprintf(&sb, "%s wins the match! type reset-match to play again\n", snapshot.MatchWinner)
	}

	return sb.String()
}

func decidedText(phase entity.Phase) string {
	if phase == entity.PhaseMatchOver {
		return "the match is over, type reset-match to play again\n"
	}

	return "round is decided, wait for the next one or type reset\n"
}
