package backup

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/erazemk/garderoba/internal/model"
)

var exportTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func sampleState() ([]model.Item, model.Settings, map[string]string) {
	soldPrice := decimal.NewFromFloat(120.50)
	soldDate := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	target := decimal.NewFromInt(10)

	items := []model.Item{
		{
			ID:            uuid.New(),
			Category:      model.CategoryOuterwear,
			Price:         decimal.NewFromFloat(899.99),
			OriginalPrice: decimal.NewFromInt(1200),
			PurchaseDate:  time.Date(2025, 11, 3, 9, 15, 0, 0, time.UTC),
			Platform:      "Vinted",
			Reason:        "winter commute coat",
			Size:          "M",
			Status:        model.StatusActive,
			WearDates: []time.Time{
				time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC),
				time.Date(2025, 12, 2, 8, 0, 0, 0, time.UTC),
			},
			ImageRefs: []string{"coat-front.jpg", "coat-back.jpg"},
			Measurements: &model.Measurements{
				Kind:          model.MeasurementGarment,
				ShoulderWidth: "44",
				Chest:         "108",
				Length:        "78",
			},
			Notes:             "runs slightly large",
			TargetCostPerWear: &target,
		},
		{
			ID:           uuid.New(),
			Category:     model.CategoryShoes,
			Price:        decimal.NewFromInt(300),
			PurchaseDate: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
			Reason:       "running shoes",
			Status:       model.StatusSold,
			SoldPrice:    &soldPrice,
			SoldDate:     &soldDate,
			SoldNotes:    "barely worn",
		},
	}
	settings := model.Settings{
		BudgetWeekly:      decimal.NewFromInt(400),
		BudgetMonthly:     decimal.NewFromFloat(1750.50),
		BudgetYearly:      decimal.NewFromInt(20000),
		ColdThresholdDays: 45,
	}
	notes := map[string]string{
		"2026-03-14": "first warm day, linen shirt",
		"2026-03-01": "all black",
	}
	return items, settings, notes
}

func assertItemsEqual(t *testing.T, want, got model.Item) {
	t.Helper()
	if got.ID != want.ID || got.Category != want.Category || got.Status != want.Status {
		t.Errorf("identity fields mismatch: %+v vs %+v", got, want)
	}
	if !got.Price.Equal(want.Price) || !got.OriginalPrice.Equal(want.OriginalPrice) {
		t.Errorf("prices mismatch: %s/%s vs %s/%s", got.Price, got.OriginalPrice, want.Price, want.OriginalPrice)
	}
	if !got.PurchaseDate.Equal(want.PurchaseDate) {
		t.Errorf("purchase date mismatch: %v vs %v", got.PurchaseDate, want.PurchaseDate)
	}
	if got.Platform != want.Platform || got.Reason != want.Reason || got.Size != want.Size || got.Notes != want.Notes {
		t.Errorf("text fields mismatch: %+v vs %+v", got, want)
	}
	if len(got.WearDates) != len(want.WearDates) {
		t.Fatalf("wear dates mismatch: %v vs %v", got.WearDates, want.WearDates)
	}
	for i := range want.WearDates {
		if !got.WearDates[i].Equal(want.WearDates[i]) {
			t.Errorf("wear date %d mismatch: %v vs %v", i, got.WearDates[i], want.WearDates[i])
		}
	}
	if len(got.ImageRefs) != len(want.ImageRefs) {
		t.Errorf("image refs mismatch: %v vs %v", got.ImageRefs, want.ImageRefs)
	}
	switch {
	case (got.Measurements == nil) != (want.Measurements == nil):
		t.Errorf("measurements presence mismatch: %v vs %v", got.Measurements, want.Measurements)
	case got.Measurements != nil && *got.Measurements != *want.Measurements:
		t.Errorf("measurements mismatch: %+v vs %+v", *got.Measurements, *want.Measurements)
	}
	switch {
	case (got.TargetCostPerWear == nil) != (want.TargetCostPerWear == nil):
		t.Errorf("target CPW presence mismatch")
	case got.TargetCostPerWear != nil && !got.TargetCostPerWear.Equal(*want.TargetCostPerWear):
		t.Errorf("target CPW mismatch: %s vs %s", got.TargetCostPerWear, want.TargetCostPerWear)
	}
	switch {
	case (got.SoldPrice == nil) != (want.SoldPrice == nil):
		t.Errorf("sold price presence mismatch")
	case got.SoldPrice != nil && !got.SoldPrice.Equal(*want.SoldPrice):
		t.Errorf("sold price mismatch: %s vs %s", got.SoldPrice, want.SoldPrice)
	}
	switch {
	case (got.SoldDate == nil) != (want.SoldDate == nil):
		t.Errorf("sold date presence mismatch")
	case got.SoldDate != nil && !got.SoldDate.Equal(*want.SoldDate):
		t.Errorf("sold date mismatch: %v vs %v", got.SoldDate, want.SoldDate)
	}
	if got.SoldNotes != want.SoldNotes {
		t.Errorf("sold notes mismatch: %q vs %q", got.SoldNotes, want.SoldNotes)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	items, settings, notes := sampleState()

	data, err := Export(items, settings, notes, exportTime)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	gotItems, gotSettings, gotNotes, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(gotItems) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(gotItems))
	}
	for i := range items {
		assertItemsEqual(t, items[i], gotItems[i])
	}

	if !gotSettings.BudgetWeekly.Equal(settings.BudgetWeekly) ||
		!gotSettings.BudgetMonthly.Equal(settings.BudgetMonthly) ||
		!gotSettings.BudgetYearly.Equal(settings.BudgetYearly) ||
		gotSettings.ColdThresholdDays != settings.ColdThresholdDays {
		t.Errorf("settings did not round-trip: %+v vs %+v", gotSettings, settings)
	}
	if len(gotNotes) != len(notes) || gotNotes["2026-03-14"] != notes["2026-03-14"] {
		t.Errorf("notes did not round-trip: %v", gotNotes)
	}
}

func TestExportWireFormat(t *testing.T) {
	items, settings, notes := sampleState()

	data, err := Export(items, settings, notes, exportTime)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}

	// Money fields are bare JSON numbers, not quoted strings.
	if v, ok := doc["budgetMonthly"].(float64); !ok || v != 1750.50 {
		t.Errorf("expected budgetMonthly as number 1750.5, got %v (%T)", doc["budgetMonthly"], doc["budgetMonthly"])
	}
	if v, ok := doc["coldThresholdDays"].(float64); !ok || v != 45 {
		t.Errorf("expected coldThresholdDays 45, got %v", doc["coldThresholdDays"])
	}
	if _, ok := doc["exportDate"].(string); !ok {
		t.Error("expected exportDate as ISO-8601 string")
	}
	if doc["appVersion"] != AppVersion {
		t.Errorf("expected appVersion %q, got %v", AppVersion, doc["appVersion"])
	}

	wireItems := doc["items"].([]any)
	first := wireItems[0].(map[string]any)
	if _, ok := first["price"].(float64); !ok {
		t.Errorf("expected item price as number, got %T", first["price"])
	}

	// Optional fields of an active item are omitted, not null.
	raw := string(data)
	active := raw[strings.Index(raw, "coat-front") : strings.Index(raw, "running shoes")]
	if strings.Contains(active, "soldPrice") {
		t.Error("expected active item to omit soldPrice")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, _, _, err := Import([]byte("not json")); err == nil {
		t.Error("expected error for invalid document")
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(exportTime); got != "wardrobe-backup-2026-03-15.json" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		items := make([]model.Item, 0, n)
		for i := 0; i < n; i++ {
			item := model.Item{
				ID:           uuid.New(),
				Category:     model.Categories[rapid.IntRange(0, len(model.Categories)-1).Draw(t, "cat")].Category,
				Price:        decimal.New(rapid.Int64Range(1, 1_000_000).Draw(t, "price"), -2),
				PurchaseDate: time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "bought"), 0).UTC(),
				Reason:       rapid.StringN(1, 40, -1).Draw(t, "reason"),
				Status:       model.StatusActive,
			}
			item.OriginalPrice = item.Price
			for j := rapid.IntRange(0, 5).Draw(t, "wears"); j > 0; j-- {
				item.WearDates = append(item.WearDates,
					time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "worn"), 0).UTC())
			}
			if rapid.Bool().Draw(t, "sold") {
				price := decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "soldPrice"), -2)
				date := time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "soldDate"), 0).UTC()
				item.Status = model.StatusSold
				item.SoldPrice = &price
				item.SoldDate = &date
			}
			items = append(items, item)
		}
		settings := model.Settings{
			BudgetWeekly:      decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "bw"), -2),
			BudgetMonthly:     decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "bm"), -2),
			BudgetYearly:      decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "by"), -2),
			ColdThresholdDays: rapid.IntRange(1, 365).Draw(t, "cold"),
		}

		data, err := Export(items, settings, nil, exportTime)
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		gotItems, gotSettings, _, err := Import(data)
		if err != nil {
			t.Fatalf("Import: %v", err)
		}

		if len(gotItems) != len(items) {
			t.Fatalf("expected %d items, got %d", len(items), len(gotItems))
		}
		for i := range items {
			if gotItems[i].ID != items[i].ID ||
				!gotItems[i].Price.Equal(items[i].Price) ||
				!gotItems[i].PurchaseDate.Equal(items[i].PurchaseDate) ||
				gotItems[i].Reason != items[i].Reason ||
				len(gotItems[i].WearDates) != len(items[i].WearDates) {
				t.Fatalf("item %d did not round-trip: %+v vs %+v", i, gotItems[i], items[i])
			}
			if (gotItems[i].SoldPrice == nil) != (items[i].SoldPrice == nil) {
				t.Fatalf("item %d sold price presence changed", i)
			}
			if items[i].SoldPrice != nil && !gotItems[i].SoldPrice.Equal(*items[i].SoldPrice) {
				t.Fatalf("item %d sold price changed: %s vs %s", i, gotItems[i].SoldPrice, items[i].SoldPrice)
			}
		}
		if !gotSettings.BudgetMonthly.Equal(settings.BudgetMonthly) ||
			gotSettings.ColdThresholdDays != settings.ColdThresholdDays {
			t.Fatalf("settings did not round-trip: %+v vs %+v", gotSettings, settings)
		}
	})
}
