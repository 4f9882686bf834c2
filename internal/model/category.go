package model

// Category is the fixed set of wardrobe categories.
type Category string

// Wardrobe categories.
const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryDress     Category = "dress"
	CategoryUnderwear Category = "underwear-home"
	CategoryShoes     Category = "shoes"
	CategoryBag       Category = "bag"
	CategoryAccessory Category = "accessory"
	CategoryOccasion  Category = "occasion"
)

// CategoryInfo is presentational metadata for a category.
type CategoryInfo struct {
	Category    Category
	Label       string
	Icon        string
	Description string
}

// Categories lists all categories in display order.
var Categories = []CategoryInfo{
	{CategoryTop, "Tops", "tshirt", "T-shirts / hoodies / shirts"},
	{CategoryBottom, "Bottoms", "figure.walk", "Jeans / trousers"},
	{CategoryOuterwear, "Outerwear", "cloud.snow", "Coats / down jackets"},
	{CategoryDress, "Dresses", "figure.dress", "Dresses / skirts"},
	{CategoryUnderwear, "Underwear & Home", "house", "Sleepwear / underwear / socks"},
	{CategoryShoes, "Shoes", "shoe", "Sneakers / boots"},
	{CategoryBag, "Bags", "bag", "Backpacks / handbags / wallets"},
	{CategoryAccessory, "Accessories", "eyeglasses", "Hats / scarves / jewellery"},
	{CategoryOccasion, "Occasion", "theatermasks", "Costumes / stage / ski"},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, info := range Categories {
		if info.Category == c {
			return true
		}
	}
	return false
}

// DormancyExempt reports whether the category is excluded from dormancy
// detection. These categories rarely get "worn" in the tracked sense and
// should not be flagged as cold.
func (c Category) DormancyExempt() bool {
	switch c {
	case CategoryUnderwear, CategoryAccessory, CategoryOccasion:
		return true
	}
	return false
}

// BaselineExempt reports whether the category is excluded from the
// adjusted average price used as a purchase-sanity baseline.
func (c Category) BaselineExempt() bool {
	return c == CategoryUnderwear || c == CategoryAccessory
}

// MeasurementKind identifies the category-specific measurement payload.
type MeasurementKind string

// Measurement kinds.
const (
	MeasurementGarment  MeasurementKind = "garment"
	MeasurementFootwear MeasurementKind = "footwear"
	MeasurementBag      MeasurementKind = "bag"
)

// Measurements is a tagged, category-specific measurement payload. All
// values are free-form numeric strings in centimetres; only the fields
// matching Kind are meaningful.
type Measurements struct {
	Kind MeasurementKind `json:"kind"`

	// Garment (tops, bottoms, outerwear, dresses).
	ShoulderWidth string `json:"shoulderWidth,omitempty"`
	Chest         string `json:"chest,omitempty"`
	SleeveLength  string `json:"sleeveLength,omitempty"`
	Length        string `json:"length,omitempty"`
	Waist         string `json:"waist,omitempty"`

	// Footwear.
	InsoleLength string `json:"insoleLength,omitempty"`

	// Bags.
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Depth  string `json:"depth,omitempty"`
}
