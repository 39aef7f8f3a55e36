package engine

import (
	"fmt"
	"railway/agent"
	"railway/game"
)

// Run plays the game with one agent per player, in seating order, until the
// game ends or maxActions actions were processed. A rejected agent action is
// replaced by a pass. It returns the number of processed actions.
func (e *Engine) Run(agents []agent.Agent, maxActions int) (int, error) {
	if len(agents) != len(e.game.Players) {
		panic("number of players does not match number of agents")
	}

	e.logger.Info().Msgf("%s is starting", e.game.CurrentPlayer().Name)

	count := 0
	for !e.game.IsOver() && count < maxActions {
		player := e.game.CurrentPlayer()
		action := agents[e.game.Turn.Get()].FindAction(e.game)

		if err := e.Process(action); err != nil {
			e.logger.Debug().Err(err).Msgf("%s falls back to pass", player.Name)
			if err := e.Process(game.Pass(player.Name)); err != nil {
				return count, fmt.Errorf("pass for %s: %w", player.Name, err)
			}
		}
		count++
	}

	if e.game.IsOver() {
		e.logger.Info().Msgf("game over after %d actions: %s", count, e.game.Ranking)
	} else {
		e.logger.Info().Msgf("stopped after %d actions: %s", count, e.game.Ranking)
	}
	return count, nil
}
