package game

import (
	"fmt"
	"strings"
)

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	PassAction ActionType = iota
	BuyShareAction
	SellShareAction
	PayDividendAction
	WithholdAction
	UndoAction
	RedoAction
)

var actionNames = []string{"pass", "buy_share", "sell_share", "pay_dividend", "withhold", "undo", "redo"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionNames[t]
}

func (t ActionType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(actionNames) {
		return nil, fmt.Errorf("unknown action type %d", int(t))
	}
	return []byte(actionNames[t]), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range actionNames {
		if n == name {
			*t = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", string(text))
}

// Action represents an action taken by a player. Undo and redo are actions
// too, so that a saved action list replays the exact timeline.
type Action struct {
	Type    ActionType `json:"type"`
	Player  string     `json:"player"`
	Company string     `json:"company,omitempty"`
	Amount  int        `json:"amount,omitempty"`
}

// IsHistory reports whether the action moves through the undo history instead
// of changing the game.
func (a Action) IsHistory() bool {
	return a.Type == UndoAction || a.Type == RedoAction
}

func (a Action) String() string {
	switch a.Type {
	case BuyShareAction, SellShareAction:
		return fmt.Sprintf("%s %s %s", a.Player, a.Type, a.Company)
	case PayDividendAction, WithholdAction:
		return fmt.Sprintf("%s %s %s %d", a.Player, a.Type, a.Company, a.Amount)
	default:
		return fmt.Sprintf("%s %s", a.Player, a.Type)
	}
}

func Pass(player string) Action { return Action{Type: PassAction, Player: player} }
func Undo(player string) Action { return Action{Type: UndoAction, Player: player} }
func Redo(player string) Action { return Action{Type: RedoAction, Player: player} }

func BuyShare(player, company string) Action {
	return Action{Type: BuyShareAction, Player: player, Company: company}
}

func SellShare(player, company string) Action {
	return Action{Type: SellShareAction, Player: player, Company: company}
}

func PayDividend(player, company string, amount int) Action {
	return Action{Type: PayDividendAction, Player: player, Company: company, Amount: amount}
}

func Withhold(player, company string, amount int) Action {
	return Action{Type: WithholdAction, Player: player, Company: company, Amount: amount}
}
