package game

import (
	"fmt"
	"railway/config"
	"railway/state"
)

// Reporter receives the human readable lines of the game report.
type Reporter interface {
	Addf(format string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Addf(format string, args ...any) {}

// Game is the dynamic state of one game. Every field that changes during play
// is a state cell, so the change stack can undo any action.
type Game struct {
	root      *state.Root
	rules     Rules
	report    Reporter
	Bank      *Bank
	Players   []*Player
	Companies []*Company
	Turn      *state.Integer // index of the current player
	Actions   *state.Integer // number of game actions played
	Passes    *state.Integer // consecutive passes
	Ranking   *state.Model
}

// NewGame builds the game items below root. The caller closes the setup set.
func NewGame(root *state.Root, cfg config.Config, rules Rules, report Reporter) *Game {
	if report == nil {
		report = nopReporter{}
	}
	g := &Game{
		root:   root,
		rules:  rules,
		report: report,
	}

	bank := state.NewOwner(root, "bank")
	g.Bank = &Bank{Owner: bank, Cash: state.NewInteger(bank, "cash", cfg.BankCash)}
	g.Bank.Cash.WithFormat(money)

	companies := state.NewOwner(root, "companies")
	for _, cc := range cfg.Companies {
		g.Companies = append(g.Companies, newCompany(companies, cc.ID, cc.Name, cc.ParPrice, cc.Shares))
	}

	players := state.NewOwner(root, "players")
	for _, name := range cfg.Players {
		p := newPlayer(players, name, cfg.StartingCash)
		p.Worth = state.NewComputed(p, "worth", func() int { return g.worth(p) })
		p.Worth.WithFormat(money)
		p.Worth.DependsOn(p.Cash, p.Shares)
		for _, c := range g.Companies {
			p.Worth.DependsOn(c.Price)
		}
		g.Players = append(g.Players, p)
	}

	meta := state.NewOwner(root, "game")
	g.Turn = state.NewInteger(meta, "turn", 0)
	g.Actions = state.NewInteger(meta, "actions", 0)
	g.Passes = state.NewInteger(meta, "passes", 0)
	g.Ranking = state.NewModel(meta, "ranking", g.ranking)
	for _, p := range g.Players {
		g.Ranking.DependsOn(p.Worth)
	}
	return g
}

func (g *Game) Root() *state.Root { return g.root }

func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.Turn.Get()]
}

func (g *Game) Player(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) Company(id string) *Company {
	for _, c := range g.Companies {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// IsOver reports whether every player passed in a row, or the bank broke.
func (g *Game) IsOver() bool {
	return g.Passes.Get() >= len(g.Players) || g.Bank.Cash.Get() <= 0
}

// Validate checks a against the rules without changing anything.
func (g *Game) Validate(a Action) error {
	if a.IsHistory() {
		return illegal(a, "undo and redo are not game actions")
	}
	if g.IsOver() {
		return illegal(a, "game is over")
	}
	p := g.Player(a.Player)
	if p == nil {
		return illegal(a, "unknown player")
	}
	if p != g.CurrentPlayer() {
		return illegal(a, "not %s's turn", p.Name)
	}
	if a.Type == PassAction {
		return nil
	}

	c := g.Company(a.Company)
	if c == nil {
		return illegal(a, "unknown company %q", a.Company)
	}
	switch a.Type {
	case BuyShareAction:
		if c.IPO.Get()+c.Pool.Get() == 0 {
			return illegal(a, "no %s shares left", c.ID())
		}
		if p.Cash.Get() < c.Price.Get() {
			return illegal(a, "%s cannot afford %s", p.Name, money(c.Price.Get()))
		}
	case SellShareAction:
		if p.SharesOf(c) == 0 {
			return illegal(a, "%s holds no %s shares", p.Name, c.ID())
		}
		if g.Bank.Cash.Get() < c.Price.Get() {
			return illegal(a, "bank cannot pay %s", money(c.Price.Get()))
		}
	case PayDividendAction, WithholdAction:
		if !c.Floated.Get() {
			return illegal(a, "%s has not floated", c.ID())
		}
		if c.President.Get() != p.Name {
			return illegal(a, "%s is not president of %s", p.Name, c.ID())
		}
		if a.Amount <= 0 {
			return illegal(a, "amount must be positive")
		}
		if a.Amount > g.Bank.Cash.Get() {
			return illegal(a, "bank cannot pay %s", money(a.Amount))
		}
	default:
		return illegal(a, "unknown action type %d", int(a.Type))
	}
	return nil
}

// Execute changes the game by a validated action and advances the turn.
func (g *Game) Execute(a Action) {
	p := g.Player(a.Player)
	switch a.Type {
	case PassAction:
		g.Passes.Add(1)
		g.report.Addf("%s passes", p.Name)
	case BuyShareAction:
		g.buy(p, g.Company(a.Company))
		g.Passes.Set(0)
	case SellShareAction:
		g.sell(p, g.Company(a.Company))
		g.Passes.Set(0)
	case PayDividendAction:
		g.payout(g.Company(a.Company), a.Amount)
		g.Passes.Set(0)
	case WithholdAction:
		g.withhold(g.Company(a.Company), a.Amount)
		g.Passes.Set(0)
	default:
		panic(fmt.Sprintf("unexpected action type %s", a.Type))
	}
	g.Actions.Add(1)
	g.Turn.Set((g.Turn.Get() + 1) % len(g.Players))
}

// Apply validates and executes a.
func (g *Game) Apply(a Action) error {
	if err := g.Validate(a); err != nil {
		return err
	}
	g.Execute(a)
	return nil
}

func (g *Game) buy(p *Player, c *Company) {
	price := c.Price.Get()
	p.Cash.Add(-price)
	if c.IPO.Get() > 0 {
		c.IPO.Add(-1)
		c.Treasury.Add(price)
		g.report.Addf("%s buys a %s share from the IPO for %s", p.Name, c.ID(), money(price))
	} else {
		c.Pool.Add(-1)
		g.Bank.Cash.Add(price)
		g.report.Addf("%s buys a %s share from the pool for %s", p.Name, c.ID(), money(price))
	}
	p.Shares.Put(c.ID(), p.SharesOf(c)+1)
	g.updatePresident(c)

	if !c.Floated.Get() && c.Sold() >= g.rules.FloatShares(c.TotalShares) {
		c.Floated.Set(true)
		g.report.Addf("%s floats", c.ID())
	}
}

func (g *Game) sell(p *Player, c *Company) {
	price := c.Price.Get()
	g.Bank.Cash.Add(-price)
	p.Cash.Add(price)
	if held := p.SharesOf(c) - 1; held > 0 {
		p.Shares.Put(c.ID(), held)
	} else {
		p.Shares.Remove(c.ID())
	}
	c.Pool.Add(1)
	c.Price.Set(g.rules.PriceDown(price))
	g.report.Addf("%s sells a %s share for %s, price drops to %s", p.Name, c.ID(), money(price), money(c.Price.Get()))
	g.updatePresident(c)
}

func (g *Game) payout(c *Company, amount int) {
	perShare := g.rules.PerShare(amount, c.TotalShares)
	g.report.Addf("%s pays %s per share", c.ID(), money(perShare))
	for _, p := range g.Players {
		if held := p.SharesOf(c); held > 0 {
			g.Bank.Cash.Add(-perShare * held)
			p.Cash.Add(perShare * held)
			g.report.Addf("%s receives %s", p.Name, money(perShare*held))
		}
	}
	if pool := c.Pool.Get(); pool > 0 {
		g.Bank.Cash.Add(-perShare * pool)
		c.Treasury.Add(perShare * pool)
	}
	c.Price.Set(g.rules.PriceUp(c.Price.Get()))
	g.report.Addf("%s price rises to %s", c.ID(), money(c.Price.Get()))
}

func (g *Game) withhold(c *Company, amount int) {
	g.Bank.Cash.Add(-amount)
	c.Treasury.Add(amount)
	c.Price.Set(g.rules.PriceDown(c.Price.Get()))
	g.report.Addf("%s withholds %s, price drops to %s", c.ID(), money(amount), money(c.Price.Get()))
}

// updatePresident hands the presidency to the largest holder. The incumbent
// keeps it on a tie.
func (g *Game) updatePresident(c *Company) {
	current := g.Player(c.President.Get())
	best := current
	for _, p := range g.Players {
		if best == nil || p.SharesOf(c) > best.SharesOf(c) {
			best = p
		}
	}
	if best == nil || best.SharesOf(c) == 0 {
		if current != nil {
			c.President.Set("")
			g.report.Addf("%s has no president", c.ID())
		}
		return
	}
	if best != current {
		c.President.Set(best.Name)
		g.report.Addf("%s becomes president of %s", best.Name, c.ID())
	}
}

// LegalActions enumerates the valid actions of the current player, pass last.
func (g *Game) LegalActions() []Action {
	if g.IsOver() {
		return nil
	}
	p := g.CurrentPlayer()
	var candidates []Action
	for _, c := range g.Companies {
		candidates = append(candidates, BuyShare(p.Name, c.ID()), SellShare(p.Name, c.ID()))
		for _, amount := range g.rules.DividendChoices(c.TotalShares) {
			candidates = append(candidates, PayDividend(p.Name, c.ID(), amount), Withhold(p.Name, c.ID(), amount))
		}
	}
	candidates = append(candidates, Pass(p.Name))

	legal := candidates[:0]
	for _, a := range candidates {
		if g.Validate(a) == nil {
			legal = append(legal, a)
		}
	}
	return legal
}
