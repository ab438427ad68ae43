package catalog

// Category identifies one of the fixed product tables. Values are created
// through ParseCategory only, so a Category is always safe to use as a table
// name.
type Category string

const (
	Mirror   Category = "mirror"
	Magnet   Category = "magnet"
	Coaster  Category = "coaster"
	Wood     Category = "wood"
	Painting Category = "painting"
)

// Categories lists every category in the order the list endpoints traverse
// them.
var Categories = []Category{Mirror, Magnet, Coaster, Wood, Painting}

// ParseCategory validates a caller-supplied category name against the fixed
// set. Caller input never reaches the storage layer unvalidated.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Flag is a promotional listing filter backed by a boolean column.
type Flag string

const (
	FlagNew Flag = "new"
	FlagHot Flag = "hot"
)

// Product is one row of a category table, tagged with its source category.
// Feature is nullable in older rows, hence the pointer.
type Product struct {
	ID       int      `json:"id"`
	Category Category `json:"category"`
	Feature  *string  `json:"feature"`
	Price    int      `json:"price"`
	Quantity int      `json:"quantity"`
	New      bool     `json:"new"`
	Hot      bool     `json:"hot"`
}
