package entity

// WinningScore is the number of round wins that takes a best-of-3 match.
const WinningScore = 2

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeTie
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWin:
		return "win"
	case OutcomeTie:
		return "tie"
	default:
		return "none"
	}
}

// AppliedMove describes an accepted move: where it went and whose mark was placed.
type AppliedMove struct {
	Row  int
	Col  int
	Mark Mark
}

// RoundState is a single round: the board, whose turn it is and how the round ended.
type RoundState struct {
	Board         *Board
	CurrentPlayer Mark
	Outcome       Outcome
	Winner        Mark
}

func NewRound(rows, columns int) (*RoundState, error) {
	board, err := NewBoard(rows, columns)
	if err != nil {
		return nil, err
	}

	return &RoundState{
		Board:         board,
		CurrentPlayer: P1,
		Outcome:       OutcomeNone,
		Winner:        Empty,
	}, nil
}

// Next returns a fresh round on an empty board of the same geometry, P1 to move.
func (that *RoundState) Next() *RoundState {
	return &RoundState{
		Board:         that.Board.Blank(),
		CurrentPlayer: P1,
		Outcome:       OutcomeNone,
		Winner:        Empty,
	}
}

func (that *RoundState) IsTerminal() bool {
	return that.Outcome != OutcomeNone
}

func (that *RoundState) Clone() *RoundState {
	cp := *that
	cp.Board = that.Board.Clone()

	return &cp
}

// MatchState holds per-player round wins and the match winner, if any.
type MatchState struct {
	Scores      map[Mark]int
	MatchWinner Mark
}

func NewMatch() *MatchState {
	return &MatchState{
		Scores:      map[Mark]int{P1: 0, P2: 0},
		MatchWinner: Empty,
	}
}

func (that *MatchState) IsOver() bool {
	return that.MatchWinner != Empty
}

// RecordWin adds exactly one point for the round winner and reports whether
// that point decided the match.
func (that *MatchState) RecordWin(winner Mark) bool {
	if !winner.IsPlayer() || that.IsOver() {
		return false
	}

	that.Scores[winner]++
	if that.Scores[winner] >= WinningScore {
		that.MatchWinner = winner
		return true
	}

	return false
}

func (that *MatchState) Clone() *MatchState {
	scores := make(map[Mark]int, len(that.Scores))
	for mark, score := range that.Scores {
		scores[mark] = score
	}

	return &MatchState{Scores: scores, MatchWinner: that.MatchWinner}
}
