package valueobjects

import "fmt"

type Category string

const (
	CategoryElectrical     Category = "Electrical"
	CategoryPlumbing       Category = "Plumbing"
	CategoryCarpentry      Category = "Carpentry"
	CategoryCleaning       Category = "Cleaning"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryFurniture      Category = "Furniture"
	CategoryOther          Category = "Other"
)

// DefaultCategory is used when a submission omits the category.
const DefaultCategory = CategoryOther

var validCategories = map[Category]bool{
	CategoryElectrical:     true,
	CategoryPlumbing:       true,
	CategoryCarpentry:      true,
	CategoryCleaning:       true,
	CategoryInfrastructure: true,
	CategoryFurniture:      true,
	CategoryOther:          true,
}

func Categories() []Category {
	return []Category{
		CategoryElectrical,
		CategoryPlumbing,
		CategoryCarpentry,
		CategoryCleaning,
		CategoryInfrastructure,
		CategoryFurniture,
		CategoryOther,
	}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// NewCategory falls back to DefaultCategory for an empty string and
// rejects anything outside the enumeration.
func NewCategory(s string) (Category, error) {
	if s == "" {
		return DefaultCategory, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
