package game

import (
	"cmp"
	"fmt"
	"railway/utils"
	"slices"
	"strings"
)

type Standing struct {
	Player string
	Worth  int
}

// worth is the player's cash plus the market value of the shares held.
func (g *Game) worth(p *Player) int {
	return p.Cash.Get() + utils.SumBy(g.Companies, func(c *Company) int {
		return p.SharesOf(c) * c.Price.Get()
	})
}

// Standings orders the players by worth, richest first. Ties keep seating order.
func (g *Game) Standings() []Standing {
	standings := make([]Standing, len(g.Players))
	for i, p := range g.Players {
		standings[i] = Standing{Player: p.Name, Worth: p.Worth.Get()}
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.Worth, a.Worth)
	})
	return standings
}

func (g *Game) ranking() string {
	parts := make([]string, 0, len(g.Players))
	for i, s := range g.Standings() {
		parts = append(parts, fmt.Sprintf("%d. %s %s", i+1, s.Player, money(s.Worth)))
	}
	return strings.Join(parts, ", ")
}

// Evaluate scores the position between -1 and 1 from the player's
// perspective, against the richest opponent.
func Evaluate(g *Game, player string) float64 {
	mine, best := 0, 0
	for _, p := range g.Players {
		if p.Name == player {
			mine = p.Worth.Get()
		} else {
			best = max(best, p.Worth.Get())
		}
	}
	return normalize(float64(mine), float64(best))
}

// Summary renders the whole game state, one line per entity.
func (g *Game) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bank %s\n", g.Bank.Cash)
	for _, c := range g.Companies {
		fmt.Fprintf(&b, "%s\n", c.Status)
	}
	for _, p := range g.Players {
		fmt.Fprintf(&b, "%s cash=%s shares=%s worth=%s\n", p.Name, p.Cash, p.Shares, p.Worth)
	}
	fmt.Fprintf(&b, "ranking %s", g.Ranking)
	return b.String()
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
