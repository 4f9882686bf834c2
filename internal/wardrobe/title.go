package wardrobe

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/model"
)

// Title thresholds. The resale threshold is an absolute amount; the rest
// are fractions of the monthly budget.
var (
	resaleMasterThreshold = decimal.NewFromInt(500)
	overspendRatio        = decimal.NewFromFloat(1.5)
	frugalRatio           = decimal.NewFromFloat(0.2)
	balancedLowRatio      = decimal.NewFromFloat(0.9)
	balancedHighRatio     = decimal.NewFromFloat(1.1)
)

const volumeBuyerCount = 10

// MonthlyTitle classifies the current calendar month's behaviour into a
// gamified title. This deliberately uses the true calendar month, not the
// rolling 30-day window the spending queries use. The predicates are
// evaluated in strict priority order; the first match wins.
func (l *Ledger) MonthlyTitle() model.MonthlyTitle {
	now := l.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	inMonth := func(t time.Time) bool {
		return !t.Before(monthStart) && t.Before(nextMonth)
	}

	spent := decimal.Zero
	bought := 0
	recovered := decimal.Zero
	for _, item := range l.items {
		if inMonth(item.PurchaseDate) {
			spent = spent.Add(item.Price)
			bought++
		}
		if item.SoldDate != nil && item.SoldPrice != nil && inMonth(*item.SoldDate) {
			recovered = recovered.Add(*item.SoldPrice)
		}
	}

	budget := l.settings.BudgetMonthly

	switch {
	case spent.IsZero() && bought == 0:
		return model.MonthlyTitle{
			Title:    "Ascetic Sage",
			Subtitle: "A whole month without a single purchase. Enlightenment.",
			Icon:     "sparkles",
			Color:    "purple",
		}
	case recovered.GreaterThan(resaleMasterThreshold):
		return model.MonthlyTitle{
			Title:    "Resale Master",
			Subtitle: "Your wardrobe doubles as an investment portfolio.",
			Icon:     "coin",
			Color:    "orange",
		}
	case spent.GreaterThan(budget.Mul(overspendRatio)):
		return model.MonthlyTitle{
			Title:    "Wallet Shredder",
			Subtitle: "One more haul and it's instant noodles until payday.",
			Icon:     "warning",
			Color:    "red",
		}
	case spent.IsPositive() && spent.LessThan(budget.Mul(frugalRatio)):
		return model.MonthlyTitle{
			Title:    "Human Piggy Bank",
			Subtitle: "Stingy... no wait, the fine art of thrift.",
			Icon:     "banknote",
			Color:    "green",
		}
	case bought > volumeBuyerCount:
		return model.MonthlyTitle{
			Title:    "Thousand-Hand Shopper",
			Subtitle: "Checkout speed exceeds wardrobe capacity.",
			Icon:     "hands",
			Color:    "pink",
		}
	case !spent.LessThan(budget.Mul(balancedLowRatio)) && !spent.GreaterThan(budget.Mul(balancedHighRatio)):
		return model.MonthlyTitle{
			Title:    "Master of Balance",
			Subtitle: "Landing within a hair of the budget takes real skill.",
			Icon:     "scale",
			Color:    "blue",
		}
	default:
		return model.MonthlyTitle{
			Title:    "Rational Beginner",
			Subtitle: "Steady as ever. Keep it up.",
			Icon:     "leaf",
			Color:    "teal",
		}
	}
}
