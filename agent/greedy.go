package agent

import (
	"railway/game"

	"github.com/rs/zerolog/log"
)

type greedyAgent struct {
	evaluate func(g *game.Game, player string) float64
}

// NewGreedyAgent returns an agent that tries every legal action on the live
// game, scores it with game.Evaluate and rolls it back again. It expects the
// open change set to be empty.
func NewGreedyAgent() Agent {
	return greedyAgent{evaluate: game.Evaluate}
}

func (a greedyAgent) FindAction(g *game.Game) game.Action {
	player := g.CurrentPlayer().Name

	var tried []game.Action
	scores := make(map[game.Action]float64)
	for _, action := range g.LegalActions() {
		if score, ok := a.try(g, action, player); ok {
			tried = append(tried, action)
			scores[action] = score
		}
	}
	if len(tried) == 0 {
		return game.Pass(player)
	}
	return findMax(tried, scores)
}

// try scores action and always rolls the game back. A panicking trial is
// skipped.
func (a greedyAgent) try(g *game.Game, action game.Action, player string) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("action", action.String()).Msg("skipping action")
			ok = false
		}
		g.Root().Stack().Rollback()
	}()
	g.Execute(action)
	return a.evaluate(g, player), true
}

// findMax picks the best scored action. Ties go to the earliest action.
func findMax(actions []game.Action, scores map[game.Action]float64) game.Action {
	best := actions[0]
	for _, action := range actions[1:] {
		if scores[action] > scores[best] {
			best = action
		}
	}
	return best
}
