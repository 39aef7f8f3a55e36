package game

type Rules interface {
	// FloatShares is the number of sold shares that floats a company.
	FloatShares(totalShares int) int
	PriceUp(price int) int
	PriceDown(price int) int
	PerShare(amount, totalShares int) int
	// DividendChoices are the amounts offered to agents for paying or withholding.
	DividendChoices(totalShares int) []int
}
