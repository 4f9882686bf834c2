// Package outfit generates random outfit suggestions from active items
// under a price ceiling.
package outfit

import (
	"errors"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/model"
)

// ErrNoOutfit is returned when no combination fits the budget.
var ErrNoOutfit = errors.New("no outfit possible within budget")

// maxAttempts bounds the random search for a combination under budget.
const maxAttempts = 50

// Outfit is one generated combination. Slots are nil when the wardrobe
// has nothing to fill them with.
type Outfit struct {
	TopOrDress  *model.Item
	Bottom      *model.Item
	Shoes       *model.Item
	Bag         *model.Item
	Accessories []model.Item
}

// TotalPrice sums the prices of all chosen items.
func (o *Outfit) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items() {
		total = total.Add(item.Price)
	}
	return total
}

// Items returns all chosen items in display order.
func (o *Outfit) Items() []model.Item {
	var items []model.Item
	for _, slot := range []*model.Item{o.TopOrDress, o.Bottom, o.Shoes, o.Bag} {
		if slot != nil {
			items = append(items, *slot)
		}
	}
	return append(items, o.Accessories...)
}

// Empty reports whether no slot was filled at all.
func (o *Outfit) Empty() bool {
	return len(o.Items()) == 0
}

// Generate assembles a random outfit from the active items: a top (or a
// dress, replacing the bottom), a bottom, shoes, a bag and up to two
// accessories. It retries until a non-empty combination fits under
// maxBudget or attempts run out.
func Generate(items []model.Item, maxBudget decimal.Decimal, rng *rand.Rand) (*Outfit, error) {
	var tops, bottoms, dresses, shoes, bags, accessories []model.Item
	for _, item := range items {
		if item.Status != model.StatusActive {
			continue
		}
		switch item.Category {
		case model.CategoryTop, model.CategoryOuterwear:
			tops = append(tops, item)
		case model.CategoryBottom:
			bottoms = append(bottoms, item)
		case model.CategoryDress:
			dresses = append(dresses, item)
		case model.CategoryShoes:
			shoes = append(shoes, item)
		case model.CategoryBag:
			bags = append(bags, item)
		case model.CategoryAccessory:
			accessories = append(accessories, item)
		}
	}

	for range maxAttempts {
		outfit := &Outfit{}

		// Either a dress or a top+bottom pairing.
		if len(dresses) > 0 && rng.IntN(2) == 0 {
			outfit.TopOrDress = pick(dresses, rng)
		} else {
			outfit.TopOrDress = pick(tops, rng)
			outfit.Bottom = pick(bottoms, rng)
		}

		outfit.Shoes = pick(shoes, rng)
		outfit.Bag = pick(bags, rng)

		if n := len(accessories); n > 0 {
			count := rng.IntN(min(2, n) + 1)
			shuffled := make([]model.Item, n)
			copy(shuffled, accessories)
			rng.Shuffle(n, func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			outfit.Accessories = shuffled[:count]
		}

		if !outfit.Empty() && !outfit.TotalPrice().GreaterThan(maxBudget) {
			return outfit, nil
		}
	}

	return nil, ErrNoOutfit
}

func pick(items []model.Item, rng *rand.Rand) *model.Item {
	if len(items) == 0 {
		return nil
	}
	item := items[rng.IntN(len(items))]
	return &item
}
