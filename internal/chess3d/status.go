package chess3d

import (
	"fmt"
	"slices"
)

type GameState int8

const (
	StateNormal GameState = iota
	StateCheck
	StateDoubleCheck
	StateCheckmate
	StateStalemate
)

var gameStateNames = [...]string{"normal", "check", "double_check", "checkmate", "stalemate"}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(gameStateNames) {
		return "unknown"
	}
	return gameStateNames[s]
}

func (s GameState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *GameState) UnmarshalText(b []byte) error {
	for i, name := range gameStateNames {
		if name == string(b) {
			*s = GameState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", b)
}

// Over reports whether the state ends the game.
func (s GameState) Over() bool {
	return s == StateDoubleCheck || s == StateCheckmate || s == StateStalemate
}

type GameStatus struct {
	State        GameState `json:"state"`
	Winner       Color     `json:"winner"`
	WhiteInCheck bool      `json:"white_in_check"`
	BlackInCheck bool      `json:"black_in_check"`
	Attackers    []PieceID `json:"attackers,omitempty"` // pieces checking the side to move
}

// EvaluateGameStatus classifies the position for the side toMove.
//
// Double check: when both colours are in check at once, or more than one
// king of toMove is attacked, every attacker of toMove's kings must be
// capturable by some legal reply. If one is not, toMove loses on the spot
// even if the king could step away. A single colour in check is plain check
// however many pieces give it.
func (p *Position) EvaluateGameStatus(toMove Color) GameStatus {
	st := GameStatus{
		State:        StateNormal,
		Winner:       NoColor,
		WhiteInCheck: p.IsKingInCheck(White),
		BlackInCheck: p.IsKingInCheck(Black),
	}
	opp := toMove.Opposite()
	inCheck := st.WhiteInCheck
	if toMove == Black {
		inCheck = st.BlackInCheck
	}

	legal := p.LegalMoves(toMove)

	if inCheck {
		attackers, kingsAttacked := p.kingAttackers(toMove)
		st.Attackers = attackers
		if ((st.WhiteInCheck && st.BlackInCheck) || kingsAttacked >= 2) && !canCaptureAll(legal, attackers) {
			st.State = StateDoubleCheck
			st.Winner = opp
			return st
		}
		if len(legal) == 0 {
			st.State = StateCheckmate
			st.Winner = opp
			return st
		}
		st.State = StateCheck
		return st
	}

	if len(legal) == 0 {
		st.State = StateStalemate
	}
	return st
}

// LosesByDoubleCheck reports whether the side to move, whose legal moves are
// legal, has already lost to the double check rule.
func (p *Position) LosesByDoubleCheck(legal []Move) bool {
	toMove := p.SideToMove
	attackers, kingsAttacked := p.kingAttackers(toMove)
	if kingsAttacked == 0 {
		return false
	}
	if kingsAttacked < 2 && !p.IsKingInCheck(toMove.Opposite()) {
		return false
	}
	return !canCaptureAll(legal, attackers)
}

// kingAttackers lists the distinct enemy pieces attacking c's kings and how
// many of those kings are attacked.
func (p *Position) kingAttackers(c Color) ([]PieceID, int) {
	var ids []PieceID
	kings := 0
	for _, k := range p.Kings(c) {
		found := p.Attackers(k, c.Opposite())
		if len(found) == 0 {
			continue
		}
		kings++
		for _, id := range found {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, kings
}

func canCaptureAll(legal []Move, attackers []PieceID) bool {
	for _, id := range attackers {
		found := false
		for _, m := range legal {
			if m.Captured == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
