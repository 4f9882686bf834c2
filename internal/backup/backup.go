// Package backup encodes the full wardrobe state as a JSON document and
// decodes it back. Export is the exact inverse of import: re-importing an
// exported document reproduces an equivalent in-memory state.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/model"
)

// AppVersion is recorded in every exported document.
const AppVersion = "1.0.0"

// Document is the backup wire format. Money values are bare JSON numbers,
// dates are ISO-8601 strings and daily-note keys are "yyyy-MM-dd" days.
type Document struct {
	Items             []wireItem        `json:"items"`
	BudgetWeekly      number            `json:"budgetWeekly"`
	BudgetMonthly     number            `json:"budgetMonthly"`
	BudgetYearly      number            `json:"budgetYearly"`
	ColdThresholdDays int               `json:"coldThresholdDays"`
	DailyNotes        map[string]string `json:"dailyNotes"`
	ExportDate        time.Time         `json:"exportDate"`
	AppVersion        string            `json:"appVersion"`
}

// wireItem mirrors model.Item with wire-format money fields.
type wireItem struct {
	ID                uuid.UUID           `json:"id"`
	Category          model.Category      `json:"category"`
	Price             number              `json:"price"`
	OriginalPrice     number              `json:"originalPrice"`
	PurchaseDate      time.Time           `json:"purchaseDate"`
	Platform          string              `json:"platform,omitempty"`
	Reason            string              `json:"reason"`
	Size              string              `json:"size,omitempty"`
	Status            model.Status        `json:"status"`
	WearDates         []time.Time         `json:"wearDates,omitempty"`
	ImageRefs         []string            `json:"imageRefs,omitempty"`
	Measurements      *model.Measurements `json:"measurements,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	TargetCostPerWear *number             `json:"targetCostPerWear,omitempty"`
	SoldPrice         *number             `json:"soldPrice,omitempty"`
	SoldDate          *time.Time          `json:"soldDate,omitempty"`
	SoldNotes         string              `json:"soldNotes,omitempty"`
}

// number is a decimal that marshals as a bare JSON number instead of the
// quoted string shopspring/decimal emits by default. Unmarshaling accepts
// both forms.
type number struct {
	decimal.Decimal
}

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// Export serializes the given state into a backup document.
func Export(items []model.Item, settings model.Settings, notes map[string]string, now time.Time) ([]byte, error) {
	doc := Document{
		Items:             make([]wireItem, 0, len(items)),
		BudgetWeekly:      number{settings.BudgetWeekly},
		BudgetMonthly:     number{settings.BudgetMonthly},
		BudgetYearly:      number{settings.BudgetYearly},
		ColdThresholdDays: settings.ColdThresholdDays,
		DailyNotes:        notes,
		ExportDate:        now,
		AppVersion:        AppVersion,
	}
	if doc.DailyNotes == nil {
		doc.DailyNotes = map[string]string{}
	}
	for _, item := range items {
		doc.Items = append(doc.Items, toWire(item))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Import parses a backup document back into ledger state.
func Import(data []byte) ([]model.Item, model.Settings, map[string]string, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, model.Settings{}, nil, fmt.Errorf("decoding backup: %w", err)
	}

	items := make([]model.Item, 0, len(doc.Items))
	for _, wi := range doc.Items {
		items = append(items, fromWire(wi))
	}
	settings := model.Settings{
		BudgetWeekly:      doc.BudgetWeekly.Decimal,
		BudgetMonthly:     doc.BudgetMonthly.Decimal,
		BudgetYearly:      doc.BudgetYearly.Decimal,
		ColdThresholdDays: doc.ColdThresholdDays,
	}
	notes := doc.DailyNotes
	if notes == nil {
		notes = map[string]string{}
	}
	return items, settings, notes, nil
}

// ExportFilename returns the canonical filename for a backup taken now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("wardrobe-backup-%s.json", now.Format("2006-01-02"))
}

func toWire(item model.Item) wireItem {
	return wireItem{
		ID:                item.ID,
		Category:          item.Category,
		Price:             number{item.Price},
		OriginalPrice:     number{item.OriginalPrice},
		PurchaseDate:      item.PurchaseDate,
		Platform:          item.Platform,
		Reason:            item.Reason,
		Size:              item.Size,
		Status:            item.Status,
		WearDates:         item.WearDates,
		ImageRefs:         item.ImageRefs,
		Measurements:      item.Measurements,
		Notes:             item.Notes,
		TargetCostPerWear: optNumber(item.TargetCostPerWear),
		SoldPrice:         optNumber(item.SoldPrice),
		SoldDate:          item.SoldDate,
		SoldNotes:         item.SoldNotes,
	}
}

func fromWire(wi wireItem) model.Item {
	return model.Item{
		ID:                wi.ID,
		Category:          wi.Category,
		Price:             wi.Price.Decimal,
		OriginalPrice:     wi.OriginalPrice.Decimal,
		PurchaseDate:      wi.PurchaseDate,
		Platform:          wi.Platform,
		Reason:            wi.Reason,
		Size:              wi.Size,
		Status:            wi.Status,
		WearDates:         wi.WearDates,
		ImageRefs:         wi.ImageRefs,
		Measurements:      wi.Measurements,
		Notes:             wi.Notes,
		TargetCostPerWear: optDecimal(wi.TargetCostPerWear),
		SoldPrice:         optDecimal(wi.SoldPrice),
		SoldDate:          wi.SoldDate,
		SoldNotes:         wi.SoldNotes,
	}
}

func optNumber(d *decimal.Decimal) *number {
	if d == nil {
		return nil
	}
	return &number{*d}
}

func optDecimal(n *number) *decimal.Decimal {
	if n == nil {
		return nil
	}
	d := n.Decimal
	return &d
}
