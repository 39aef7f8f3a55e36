package game

import (
	"fmt"
	"railway/state"
)

type Bank struct {
	*state.Owner
	Cash *state.Integer
}

type Player struct {
	*state.Owner
	Name   string
	Cash   *state.Integer
	Shares *state.Map[string, int] // company ID -> shares held
	Worth  *state.Computed[int]
}

func (p *Player) SharesOf(c *Company) int {
	return p.Shares.GetOr(c.ID(), 0)
}

type Company struct {
	*state.Owner
	Name        string
	Par         int
	TotalShares int
	Price       *state.Integer
	Treasury    *state.Integer
	IPO         *state.Integer // unsold shares
	Pool        *state.Integer // shares sold back to the market
	President   *state.Value[string]
	Floated     *state.Value[bool]
	MarketCap   *state.Computed[int]
	Status      *state.Model
}

// Sold is the number of shares held by players.
func (c *Company) Sold() int {
	return c.TotalShares - c.IPO.Get() - c.Pool.Get()
}

func newCompany(parent state.Item, id, name string, par, shares int) *Company {
	c := &Company{
		Owner:       state.NewOwner(parent, id),
		Name:        name,
		Par:         par,
		TotalShares: shares,
	}
	c.Price = state.NewInteger(c, "price", par)
	c.Treasury = state.NewInteger(c, "treasury", 0)
	c.IPO = state.NewInteger(c, "ipo", shares)
	c.Pool = state.NewInteger(c, "pool", 0)
	c.President = state.NewString(c, "president", "")
	c.Floated = state.NewBoolean(c, "floated", false)

	c.MarketCap = state.NewComputed(c, "market_cap", func() int {
		return c.Price.Get() * c.TotalShares
	}).DependsOn(c.Price)
	c.MarketCap.WithFormat(money)

	c.Status = state.NewModel(c, "status", func() string {
		president := c.President.Get()
		if president == "" {
			president = "-"
		}
		floated := ""
		if c.Floated.Get() {
			floated = " floated"
		}
		return fmt.Sprintf("%s %s%s president=%s treasury=%s ipo=%d pool=%d cap=%s",
			c.ID(), money(c.Price.Get()), floated, president, money(c.Treasury.Get()),
			c.IPO.Get(), c.Pool.Get(), c.MarketCap.String())
	}).DependsOn(c.Price, c.President, c.Floated, c.Treasury, c.IPO, c.Pool, c.MarketCap)
	return c
}

func newPlayer(parent state.Item, name string, cash int) *Player {
	p := &Player{
		Owner: state.NewOwner(parent, name),
		Name:  name,
	}
	p.Cash = state.NewInteger(p, "cash", cash)
	p.Cash.WithFormat(money)
	p.Shares = state.NewMap[string, int](p, "shares")
	return p
}

func money(v int) string {
	return fmt.Sprintf("$%d", v)
}
