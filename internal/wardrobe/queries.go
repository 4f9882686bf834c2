package wardrobe

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/model"
)

// All queries are pure functions of (items, settings, now), recomputed on
// every call. No caching; a personal-scale collection makes O(n) scans
// cheap enough.

// luxuryMultiplier marks a candidate price as a luxury purchase once it
// exceeds this multiple of the adjusted average.
var luxuryMultiplier = decimal.NewFromInt(2)

// ItemsForPeriod returns items purchased within the rolling window ending
// now, regardless of status.
func (l *Ledger) ItemsForPeriod(period model.Period) []model.Item {
	cutoff := l.now().AddDate(0, 0, -period.Days())
	var filtered []model.Item
	for _, item := range l.items {
		if !item.PurchaseDate.Before(cutoff) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// TotalSpending sums purchase prices over the period. Sold items still
// count as spending when purchased in-window.
func (l *Ledger) TotalSpending(period model.Period) decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.ItemsForPeriod(period) {
		total = total.Add(item.Price)
	}
	return total
}

// TotalCount returns the number of items purchased in the period.
func (l *Ledger) TotalCount(period model.Period) int {
	return len(l.ItemsForPeriod(period))
}

// TotalRecovered sums recorded sale prices of items sold within the
// rolling window. Sales without a recorded price are skipped.
func (l *Ledger) TotalRecovered(period model.Period) decimal.Decimal {
	cutoff := l.now().AddDate(0, 0, -period.Days())
	total := decimal.Zero
	for _, item := range l.items {
		if item.Status != model.StatusSold || item.SoldPrice == nil || item.SoldDate == nil {
			continue
		}
		if !item.SoldDate.Before(cutoff) {
			total = total.Add(*item.SoldPrice)
		}
	}
	return total
}

// AllTimeRecovered sums every recorded sale price.
func (l *Ledger) AllTimeRecovered() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.items {
		if item.Status == model.StatusSold && item.SoldPrice != nil {
			total = total.Add(*item.SoldPrice)
		}
	}
	return total
}

// NetSpending returns spending minus recovery for the period. Negative
// means net profit.
func (l *Ledger) NetSpending(period model.Period) decimal.Decimal {
	return l.TotalSpending(period).Sub(l.TotalRecovered(period))
}

// Budget returns the configured ceiling for the period.
func (l *Ledger) Budget(period model.Period) decimal.Decimal {
	return l.settings.Budget(period)
}

// BudgetReport summarizes a period's spending against its budget.
type BudgetReport struct {
	Period    model.Period
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Recovered decimal.Decimal
	Net       decimal.Decimal
	// Remaining is budget minus net spending; negative when over budget.
	Remaining decimal.Decimal
	State     model.BudgetState
}

// BudgetFor computes the budget report for a period. A negative net spend
// is framed as net profit, taking priority over the under/over framing.
func (l *Ledger) BudgetFor(period model.Period) BudgetReport {
	report := BudgetReport{
		Period:    period,
		Budget:    l.Budget(period),
		Spent:     l.TotalSpending(period),
		Recovered: l.TotalRecovered(period),
	}
	report.Net = report.Spent.Sub(report.Recovered)
	report.Remaining = report.Budget.Sub(report.Net)

	switch {
	case report.Net.IsNegative():
		report.State = model.BudgetNetProfit
	case report.Remaining.IsNegative():
		report.State = model.BudgetOver
	default:
		report.State = model.BudgetUnder
	}
	return report
}

// SpendingByCategory groups period spending by category, sorted by amount
// descending.
func (l *Ledger) SpendingByCategory(period model.Period) []model.CategorySpending {
	totals := map[model.Category]decimal.Decimal{}
	for _, item := range l.ItemsForPeriod(period) {
		totals[item.Category] = totals[item.Category].Add(item.Price)
	}

	buckets := make([]model.CategorySpending, 0, len(totals))
	for category, amount := range totals {
		buckets = append(buckets, model.CategorySpending{Category: category, Amount: amount})
	}
	sort.Slice(buckets, func(a, b int) bool {
		if !buckets[a].Amount.Equal(buckets[b].Amount) {
			return buckets[a].Amount.GreaterThan(buckets[b].Amount)
		}
		return buckets[a].Category < buckets[b].Category
	})
	return buckets
}

// ColdItems returns dormant items sorted oldest purchase first.
func (l *Ledger) ColdItems() []model.Item {
	now := l.now()
	var cold []model.Item
	for _, item := range l.items {
		if item.IsCold(l.settings.ColdThresholdDays, now) {
			cold = append(cold, item)
		}
	}
	sort.Slice(cold, func(a, b int) bool {
		return cold[a].PurchaseDate.Before(cold[b].PurchaseDate)
	})
	return cold
}

// ColdCount returns the number of dormant items.
func (l *Ledger) ColdCount() int {
	now := l.now()
	count := 0
	for _, item := range l.items {
		if item.IsCold(l.settings.ColdThresholdDays, now) {
			count++
		}
	}
	return count
}

// ActiveItems returns active items, newest purchase first.
func (l *Ledger) ActiveItems() []model.Item {
	var active []model.Item
	for _, item := range l.items {
		if item.Status == model.StatusActive {
			active = append(active, item)
		}
	}
	sortByPurchaseDesc(active)
	return active
}

// AllItemsSorted returns every item, newest purchase first.
func (l *Ledger) AllItemsSorted() []model.Item {
	out := l.Items()
	sortByPurchaseDesc(out)
	return out
}

// RecentlyAdded returns up to ten of the newest active items.
func (l *Ledger) RecentlyAdded() []model.Item {
	active := l.ActiveItems()
	if len(active) > 10 {
		active = active[:10]
	}
	return active
}

// ItemsForCategory returns items in one category, newest purchase first.
func (l *Ledger) ItemsForCategory(category model.Category) []model.Item {
	var out []model.Item
	for _, item := range l.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	sortByPurchaseDesc(out)
	return out
}

// Search filters items by a case-insensitive substring query across
// category, platform, reason and size.
func (l *Ledger) Search(query string, includeSold bool) []model.Item {
	base := l.ActiveItems()
	if includeSold {
		base = l.AllItemsSorted()
	}
	var out []model.Item
	for _, item := range base {
		if item.Matches(query) {
			out = append(out, item)
		}
	}
	return out
}

// GroupedByMonth groups items by calendar month of purchase, most recent
// month first, after applying the optional search query.
func (l *Ledger) GroupedByMonth(includeSold bool, query string) []model.MonthlyGroup {
	groups := map[string]*model.MonthlyGroup{}
	for _, item := range l.Search(query, includeSold) {
		key := item.MonthKey()
		group, ok := groups[key]
		if !ok {
			group = &model.MonthlyGroup{MonthKey: key, SortDate: item.MonthStart()}
			groups[key] = group
		}
		group.Items = append(group.Items, item)
	}

	out := make([]model.MonthlyGroup, 0, len(groups))
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].SortDate.After(out[b].SortDate)
	})
	return out
}

// OutfitFor returns the items worn on a given calendar day, sorted by
// category for stable display.
func (l *Ledger) OutfitFor(date time.Time) []model.Item {
	var worn []model.Item
	for _, item := range l.items {
		if item.WornOn(date) {
			worn = append(worn, item)
		}
	}
	sort.Slice(worn, func(a, b int) bool {
		return worn[a].Category < worn[b].Category
	})
	return worn
}

// DatesWithOutfits returns the calendar days within the given month that
// have at least one wear event, as DayKey strings.
func (l *Ledger) DatesWithOutfits(month time.Time) map[string]bool {
	days := map[string]bool{}
	for _, item := range l.items {
		for _, d := range item.WearDates {
			if d.Year() == month.Year() && d.Month() == month.Month() {
				days[model.DayKey(d)] = true
			}
		}
	}
	return days
}

// AdjustedAveragePrice returns the mean price of active items excluding
// underwear/home and accessories, the personalized "is this a reasonable
// price" baseline. Returns zero while no comparable items exist.
func (l *Ledger) AdjustedAveragePrice() decimal.Decimal {
	total := decimal.Zero
	count := 0
	for _, item := range l.items {
		if item.Status != model.StatusActive || item.Category.BaselineExempt() {
			continue
		}
		total = total.Add(item.Price)
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// EvaluatePrice classifies a candidate purchase price against the
// adjusted average. With no baseline yet, every price is a first
// purchase; there is no divide-by-zero path.
func (l *Ledger) EvaluatePrice(price decimal.Decimal) model.PriceVerdict {
	average := l.AdjustedAveragePrice()
	switch {
	case average.IsZero():
		return model.VerdictFirstPurchase
	case price.LessThan(average):
		return model.VerdictGoodValue
	case price.GreaterThan(average.Mul(luxuryMultiplier)):
		return model.VerdictLuxury
	default:
		return model.VerdictNeutral
	}
}

// BestValueItems returns active items ranked by cost-per-wear ascending.
// Never-worn items cannot be compared numerically (their CPW collapses to
// full price), so they form a separate bucket sorted last, priciest first.
func (l *Ledger) BestValueItems() []model.Item {
	worn, unworn := l.splitByWear()
	sort.Slice(worn, func(a, b int) bool {
		return worn[a].CostPerWear().LessThan(worn[b].CostPerWear())
	})
	sort.Slice(unworn, func(a, b int) bool {
		return unworn[a].Price.GreaterThan(unworn[b].Price)
	})
	return append(worn, unworn...)
}

// NeedsWearItems returns active items ranked worst utilization first:
// never-worn items lead (priciest first), then worn items by
// cost-per-wear descending.
func (l *Ledger) NeedsWearItems() []model.Item {
	worn, unworn := l.splitByWear()
	sort.Slice(unworn, func(a, b int) bool {
		return unworn[a].Price.GreaterThan(unworn[b].Price)
	})
	sort.Slice(worn, func(a, b int) bool {
		return worn[a].CostPerWear().GreaterThan(worn[b].CostPerWear())
	})
	return append(unworn, worn...)
}

func (l *Ledger) splitByWear() (worn, unworn []model.Item) {
	for _, item := range l.items {
		if item.Status != model.StatusActive {
			continue
		}
		if item.WearCount() == 0 {
			unworn = append(unworn, item)
		} else {
			worn = append(worn, item)
		}
	}
	return worn, unworn
}

func sortByPurchaseDesc(items []model.Item) {
	sort.Slice(items, func(a, b int) bool {
		return items[a].PurchaseDate.After(items[b].PurchaseDate)
	})
}
