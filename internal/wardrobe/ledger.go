// Package wardrobe implements the wardrobe ledger: the authoritative
// item collection, user settings and daily notes, with mutation
// operations and derived read-only queries. Durable state goes through an
// injected Gateway; image bytes live behind an injected ImageStore.
package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/model"
)

// Mutation errors. All of them are non-fatal: a failed call never
// corrupts ledger state, it just reports what went wrong.
var (
	ErrNotFound    = errors.New("item not found")
	ErrAlreadySold = errors.New("item already sold")
	ErrInvalidItem = errors.New("invalid item")
)

// Gateway persists ledger state. Implementations must treat every save as
// a full-snapshot overwrite and must surface read problems as errors; the
// ledger degrades to empty/default state rather than failing to start.
type Gateway interface {
	SaveItems(ctx context.Context, items []model.Item) error
	LoadItems(ctx context.Context) ([]model.Item, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
	LoadSettings(ctx context.Context) (model.Settings, error)
	SaveNotes(ctx context.Context, notes map[string]string) error
	LoadNotes(ctx context.Context) (map[string]string, error)
}

// ImageStore owns image bytes. The ledger only handles opaque references.
type ImageStore interface {
	Store(r io.Reader) (string, error)
	Resolve(ref string) ([]byte, error)
	Delete(ref string) error
}

// Ledger owns the in-memory wardrobe state. It has exactly one logical
// writer and performs no locking.
type Ledger struct {
	gateway Gateway
	images  ImageStore
	log     zerolog.Logger
	now     func() time.Time

	items    []model.Item
	settings model.Settings
	notes    map[string]string

	// Item ids modified by the last CopyYesterdayOutfit call; the sole
	// undo buffer.
	lastCopy []uuid.UUID
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the ledger's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the ledger's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// New loads state through the gateway and returns a ready ledger.
// Missing or unreadable state degrades to empty items, default settings
// and no notes; the failure is logged, never fatal.
func New(ctx context.Context, gateway Gateway, images ImageStore, opts ...Option) *Ledger {
	l := &Ledger{
		gateway: gateway,
		images:  images,
		log:     zerolog.Nop(),
		now:     time.Now,
		notes:   map[string]string{},
	}
	for _, opt := range opts {
		opt(l)
	}

	items, err := gateway.LoadItems(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("loading items failed, starting empty")
		items = nil
	}
	l.items = items

	settings, err := gateway.LoadSettings(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("loading settings failed, using defaults")
		settings = model.DefaultSettings()
	}
	l.settings = settings

	notes, err := gateway.LoadNotes(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("loading daily notes failed, starting empty")
		notes = map[string]string{}
	}
	if notes == nil {
		notes = map[string]string{}
	}
	l.notes = notes

	return l
}

// Items returns a copy of the item collection.
func (l *Ledger) Items() []model.Item {
	out := make([]model.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Settings returns the current settings.
func (l *Ledger) Settings() model.Settings {
	return l.settings
}

// Notes returns a copy of the daily-notes map.
func (l *Ledger) Notes() map[string]string {
	out := make(map[string]string, len(l.notes))
	for k, v := range l.notes {
		out[k] = v
	}
	return out
}

// AddItem validates and appends a new item. Category, a positive price, a
// purchase reason and at least one image are required. Zero-value fields
// are defaulted: id, purchase date (now), original price (price), status.
func (l *Ledger) AddItem(ctx context.Context, item model.Item) error {
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, item.Category)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Reason) == "" {
		return fmt.Errorf("%w: purchase reason is required", ErrInvalidItem)
	}
	if len(item.ImageRefs) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidItem)
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if !item.OriginalPrice.IsPositive() {
		item.OriginalPrice = item.Price
	}
	if item.PurchaseDate.IsZero() {
		item.PurchaseDate = l.now()
	}
	if item.Status == "" {
		item.Status = model.StatusActive
	}

	l.items = append(l.items, item)
	return l.persistItems(ctx)
}

// UpdateItem replaces an item by identity.
func (l *Ledger) UpdateItem(ctx context.Context, item model.Item) error {
	idx := l.indexOf(item.ID)
	if idx < 0 {
		return ErrNotFound
	}
	l.items[idx] = item
	return l.persistItems(ctx)
}

// DeleteItem removes an item and releases its image references.
func (l *Ledger) DeleteItem(ctx context.Context, id uuid.UUID) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	for _, ref := range l.items[idx].ImageRefs {
		if err := l.images.Delete(ref); err != nil {
			l.log.Warn().Err(err).Str("image", ref).Msg("releasing image failed")
		}
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return l.persistItems(ctx)
}

// Sale carries the details of a sale. Nil Price means the sale price was
// not recorded; nil Date defaults to now.
type Sale struct {
	Price *decimal.Decimal
	Date  *time.Time
	Notes string
}

// MarkSold transitions an active item to sold and records the sale.
func (l *Ledger) MarkSold(ctx context.Context, id uuid.UUID, sale Sale) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	item := &l.items[idx]
	if item.Status == model.StatusSold {
		return ErrAlreadySold
	}

	soldDate := l.now()
	if sale.Date != nil {
		soldDate = *sale.Date
	}
	item.Status = model.StatusSold
	item.SoldPrice = sale.Price
	item.SoldDate = &soldDate
	item.SoldNotes = sale.Notes
	return l.persistItems(ctx)
}

// LogWear appends a wear event. A zero date means now. Duplicate days are
// allowed here; convenience flows guard against double-logging themselves.
func (l *Ledger) LogWear(ctx context.Context, id uuid.UUID, date time.Time) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if date.IsZero() {
		date = l.now()
	}
	l.items[idx].WearDates = append(l.items[idx].WearDates, date)
	return l.persistItems(ctx)
}

// RemoveWear removes every wear event on the same calendar day as date.
func (l *Ledger) RemoveWear(ctx context.Context, id uuid.UUID, date time.Time) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if !l.stripWearDay(idx, date) {
		return nil
	}
	return l.persistItems(ctx)
}

// CopyYesterdayOutfit logs today's wear for every item worn yesterday
// that has no wear event today yet. It returns the ids actually modified;
// that set is also recorded as the undo buffer for UndoLastCopy.
func (l *Ledger) CopyYesterdayOutfit(ctx context.Context) ([]uuid.UUID, error) {
	now := l.now()
	yesterday := now.AddDate(0, 0, -1)

	var modified []uuid.UUID
	for i := range l.items {
		item := &l.items[i]
		if !item.WornOn(yesterday) || item.WornOn(now) {
			continue
		}
		item.WearDates = append(item.WearDates, now)
		modified = append(modified, item.ID)
	}
	l.lastCopy = modified

	if len(modified) == 0 {
		return nil, nil
	}
	return modified, l.persistItems(ctx)
}

// UndoLastCopy removes today's wear events for every item touched by the
// last CopyYesterdayOutfit call and clears the buffer. Calling it again
// without an intervening copy is a no-op.
func (l *Ledger) UndoLastCopy(ctx context.Context) error {
	if len(l.lastCopy) == 0 {
		return nil
	}
	today := l.now()
	changed := false
	for _, id := range l.lastCopy {
		if idx := l.indexOf(id); idx >= 0 && l.stripWearDay(idx, today) {
			changed = true
		}
	}
	l.lastCopy = nil
	if !changed {
		return nil
	}
	return l.persistItems(ctx)
}

// SetDailyNote upserts the note for a calendar day. Empty or
// whitespace-only text deletes the note instead.
func (l *Ledger) SetDailyNote(ctx context.Context, date time.Time, text string) error {
	key := model.DayKey(date)
	if strings.TrimSpace(text) == "" {
		delete(l.notes, key)
	} else {
		l.notes[key] = text
	}
	if err := l.gateway.SaveNotes(ctx, l.notes); err != nil {
		l.log.Warn().Err(err).Msg("persisting daily notes failed, in-memory state retained")
		return fmt.Errorf("persisting daily notes: %w", err)
	}
	return nil
}

// DailyNote returns the note for a calendar day, if any.
func (l *Ledger) DailyNote(date time.Time) (string, bool) {
	note, ok := l.notes[model.DayKey(date)]
	return note, ok
}

// SetBudget updates the budget ceiling for one period.
func (l *Ledger) SetBudget(ctx context.Context, period model.Period, amount decimal.Decimal) error {
	if !period.Valid() {
		return fmt.Errorf("unknown period %q", period)
	}
	if amount.IsNegative() {
		return fmt.Errorf("budget must not be negative")
	}
	switch period {
	case model.PeriodWeek:
		l.settings.BudgetWeekly = amount
	case model.PeriodMonth:
		l.settings.BudgetMonthly = amount
	case model.PeriodYear:
		l.settings.BudgetYearly = amount
	}
	return l.persistSettings(ctx)
}

// SetColdThreshold updates the dormancy threshold in days.
func (l *Ledger) SetColdThreshold(ctx context.Context, days int) error {
	if days <= 0 {
		return fmt.Errorf("cold threshold must be positive")
	}
	l.settings.ColdThresholdDays = days
	return l.persistSettings(ctx)
}

// Restore replaces the entire ledger state, typically from an imported
// backup, and persists all of it.
func (l *Ledger) Restore(ctx context.Context, items []model.Item, settings model.Settings, notes map[string]string) error {
	l.items = items
	l.settings = settings
	if notes == nil {
		notes = map[string]string{}
	}
	l.notes = notes
	l.lastCopy = nil

	var errs []error
	if err := l.persistItems(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := l.persistSettings(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := l.gateway.SaveNotes(ctx, l.notes); err != nil {
		errs = append(errs, fmt.Errorf("persisting daily notes: %w", err))
	}
	return errors.Join(errs...)
}

// persistItems writes the item snapshot. On failure the in-memory
// mutation stays committed; the error is logged and returned so callers
// can surface a warning.
func (l *Ledger) persistItems(ctx context.Context) error {
	if err := l.gateway.SaveItems(ctx, l.items); err != nil {
		l.log.Warn().Err(err).Msg("persisting items failed, in-memory state retained")
		return fmt.Errorf("persisting items: %w", err)
	}
	return nil
}

func (l *Ledger) persistSettings(ctx context.Context) error {
	if err := l.gateway.SaveSettings(ctx, l.settings); err != nil {
		l.log.Warn().Err(err).Msg("persisting settings failed, in-memory state retained")
		return fmt.Errorf("persisting settings: %w", err)
	}
	return nil
}

// indexOf returns the index of the item with the given id, or -1.
func (l *Ledger) indexOf(id uuid.UUID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// stripWearDay removes all wear events on date's calendar day from the
// item at idx, reporting whether anything was removed.
func (l *Ledger) stripWearDay(idx int, date time.Time) bool {
	item := &l.items[idx]
	kept := item.WearDates[:0]
	removed := false
	for _, d := range item.WearDates {
		if model.SameDay(d, date) {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	item.WearDates = kept
	return removed
}
