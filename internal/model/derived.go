package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySpending is an aggregated spend for one category, produced
// transiently by the query engine.
type CategorySpending struct {
	Category Category
	Amount   decimal.Decimal
}

// MonthlyGroup holds the items purchased in one calendar month.
type MonthlyGroup struct {
	MonthKey string
	SortDate time.Time
	Items    []Item
}

// ItemCount returns the number of items in the group.
func (g MonthlyGroup) ItemCount() int {
	return len(g.Items)
}

// BudgetState frames a period's net spending against its budget. Net
// profit takes display priority over the under/over framing.
type BudgetState string

// Budget states.
const (
	BudgetNetProfit BudgetState = "net-profit"
	BudgetUnder     BudgetState = "under"
	BudgetOver      BudgetState = "over"
)

// PriceVerdict classifies a candidate purchase price against the adjusted
// average price of the wardrobe.
type PriceVerdict string

// Price verdicts. VerdictFirstPurchase is returned while no baseline
// exists yet.
const (
	VerdictFirstPurchase PriceVerdict = "first-purchase"
	VerdictGoodValue     PriceVerdict = "good-value"
	VerdictNeutral       PriceVerdict = "neutral"
	VerdictLuxury        PriceVerdict = "luxury"
)

// MonthlyTitle is the gamified classification of the current calendar
// month's behaviour. Title and Subtitle are display strings; Icon and
// Color are presentational hints.
type MonthlyTitle struct {
	Title    string
	Subtitle string
	Icon     string
	Color    string
}
