package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents one purchased piece of clothing.
type Item struct {
	ID            uuid.UUID       `json:"id"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	Platform      string          `json:"platform,omitempty"`
	Reason        string          `json:"reason"`
	Size          string          `json:"size,omitempty"`
	Status        Status          `json:"status"`

	WearDates []time.Time `json:"wearDates,omitempty"`
	ImageRefs []string    `json:"imageRefs,omitempty"`

	Measurements      *Measurements    `json:"measurements,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	TargetCostPerWear *decimal.Decimal `json:"targetCostPerWear,omitempty"`

	// Set only once Status is StatusSold.
	SoldPrice *decimal.Decimal `json:"soldPrice,omitempty"`
	SoldDate  *time.Time       `json:"soldDate,omitempty"`
	SoldNotes string           `json:"soldNotes,omitempty"`
}

// Status is an item's lifecycle state. An item moves from active to sold
// exactly once; there is no way back.
type Status string

// Item statuses.
const (
	StatusActive Status = "active"
	StatusSold   Status = "sold"
)

// WearCount returns the number of logged wear events.
func (i *Item) WearCount() int {
	return len(i.WearDates)
}

// LastWorn returns the most recent wear date, if any.
func (i *Item) LastWorn() (time.Time, bool) {
	if len(i.WearDates) == 0 {
		return time.Time{}, false
	}
	last := i.WearDates[0]
	for _, d := range i.WearDates[1:] {
		if d.After(last) {
			last = d
		}
	}
	return last, true
}

// CostPerWear returns price divided by wear count. A never-worn item
// reports its full price, not infinity; callers ranking by value must
// bucket zero-wear items separately instead of comparing numerically.
func (i *Item) CostPerWear() decimal.Decimal {
	n := i.WearCount()
	if n == 0 {
		return i.Price
	}
	return i.Price.Div(decimal.NewFromInt(int64(n)))
}

// WornOn reports whether the item has a wear event on the same calendar
// day as the given date.
func (i *Item) WornOn(day time.Time) bool {
	for _, d := range i.WearDates {
		if SameDay(d, day) {
			return true
		}
	}
	return false
}

// IsCold reports whether the item counts as dormant: never worn and older
// than the threshold, or last worn more than the threshold ago. Sold items
// and exempt categories (underwear/home, accessories, occasion-wear) are
// never dormant.
func (i *Item) IsCold(thresholdDays int, now time.Time) bool {
	if i.Status != StatusActive || i.Category.DormancyExempt() {
		return false
	}
	cutoff := now.AddDate(0, 0, -thresholdDays)
	last, worn := i.LastWorn()
	if !worn {
		return i.PurchaseDate.Before(cutoff)
	}
	return last.Before(cutoff)
}

// MonthKey returns a stable grouping key for the purchase month.
func (i *Item) MonthKey() string {
	return i.PurchaseDate.Format("2006-01")
}

// MonthStart returns midnight on the first day of the purchase month,
// used to sort month groups chronologically.
func (i *Item) MonthStart() time.Time {
	y, m, _ := i.PurchaseDate.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, i.PurchaseDate.Location())
}

// Matches reports whether the item matches a case-insensitive substring
// query across category, platform, reason and size.
func (i *Item) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{string(i.Category), i.Platform, i.Reason, i.Size} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
