package game

type StandardRules struct {
	Step         int
	FloatPercent int
}

func NewStandardRules(step int) *StandardRules {
	return &StandardRules{
		Step:         step,
		FloatPercent: 50,
	}
}

func (sr *StandardRules) FloatShares(totalShares int) int {
	return (totalShares*sr.FloatPercent + 99) / 100
}

func (sr *StandardRules) PriceUp(price int) int {
	return price + sr.Step
}

func (sr *StandardRules) PriceDown(price int) int {
	// Prices never drop below one step
	return max(price-sr.Step, sr.Step)
}

func (sr *StandardRules) PerShare(amount, totalShares int) int {
	return amount / totalShares
}

func (sr *StandardRules) DividendChoices(totalShares int) []int {
	return []int{totalShares * sr.Step, totalShares * sr.Step * 3}
}
