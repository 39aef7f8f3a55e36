package agent

import "railway/game"

type Agent interface {
	// FindAction returns the action the current player of g takes next
	FindAction(g *game.Game) game.Action
}
