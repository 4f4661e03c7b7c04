package entity

type Phase string

const (
	PhaseInRound   Phase = "in_round"
	PhaseRoundWon  Phase = "round_won"
	PhaseRoundTied Phase = "round_tied"
	PhaseMatchOver Phase = "match_over"
)

// Snapshot is the render view of a match. Cells hold display symbols, "" for empty.
type Snapshot struct {
	MatchID       string     `json:"match_id,omitempty"`
	Version       uint64     `json:"version"`
	Rows          int        `json:"rows"`
	Columns       int        `json:"columns"`
	Cells         [][]string `json:"cells"`
	Phase         Phase      `json:"phase"`
	CurrentPlayer string     `json:"current_player"`
	RoundWinner   string     `json:"round_winner,omitempty"`
	Scores        Scores     `json:"scores"`
	MatchWinner   string     `json:"match_winner,omitempty"`
}

type Scores struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// NewSnapshot renders round and match state through the symbol table.
func NewSnapshot(round *RoundState, match *MatchState, symbols Symbols, version uint64) Snapshot {
	cells := make([][]string, round.Board.Rows())
	for r := range cells {
		cells[r] = make([]string, round.Board.Columns())
		for c := range cells[r] {
			cells[r][c] = symbols.Symbol(round.Board.At(r, c))
		}
	}

	phase := PhaseInRound
	switch {
	case match.IsOver():
		phase = PhaseMatchOver
	case round.Outcome == OutcomeWin:
		phase = PhaseRoundWon
	case round.Outcome == OutcomeTie:
		phase = PhaseRoundTied
	}

	return Snapshot{
		Version:       version,
		Rows:          round.Board.Rows(),
		Columns:       round.Board.Columns(),
		Cells:         cells,
		Phase:         phase,
		CurrentPlayer: symbols.Symbol(round.CurrentPlayer),
		RoundWinner:   symbols.Symbol(round.Winner),
		Scores:        Scores{P1: match.Scores[P1], P2: match.Scores[P2]},
		MatchWinner:   symbols.Symbol(match.MatchWinner),
	}
}
