package agent

import (
	"railway/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng  *rand.Rand
	undo float64
}

// NewRandomAgent returns an agent that plays a uniformly random legal action.
// With probability undo it walks the history instead, when that is possible.
func NewRandomAgent(seed uint64, undo float64) Agent {
	return &randomAgent{
		rng:  rand.New(rand.NewSource(seed)),
		undo: undo,
	}
}

func (a *randomAgent) FindAction(g *game.Game) game.Action {
	player := g.CurrentPlayer().Name
	stack := g.Root().Stack()
	if a.undo > 0 && a.rng.Float64() < a.undo {
		if stack.IsRedoPossible() && a.rng.Intn(2) == 0 {
			return game.Redo(player)
		}
		if stack.IsUndoPossible() {
			return game.Undo(player)
		}
	}

	legal := g.LegalActions()
	if len(legal) == 0 {
		return game.Pass(player)
	}
	return legal[a.rng.Intn(len(legal))]
}
