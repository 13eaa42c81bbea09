package transaction

import (
	"fmt"
	"strings"
)

// Category is the closed set of spending categories a tag can map to.
// CategoryOther is the "no mapping" sentinel.
type Category int

const (
	CategoryOther Category = iota
	CategoryBank
	CategoryCar
	CategoryCash
	CategoryClothes
	CategoryEntertainment
	CategoryGift
	CategoryGrocery
	CategoryHome
	CategoryHomeImprovement
	CategoryHomeAndElectronics
	CategoryIncome
	CategoryInsurance
	CategoryMedical
	CategoryPersonalCare
	CategoryRecurringExpenses
	CategoryRestaurant
	CategoryTaxes
	CategoryTransit
	CategoryTravelExpenses
	CategoryVitamins
)

var categoryNames = map[Category]string{
	CategoryOther:              "Other",
	CategoryBank:               "Bank",
	CategoryCar:                "Car",
	CategoryCash:               "Cash",
	CategoryClothes:            "Clothes",
	CategoryEntertainment:      "Entertainment",
	CategoryGift:               "Gift",
	CategoryGrocery:            "Grocery",
	CategoryHome:               "Home",
	CategoryHomeImprovement:    "HomeImprovement",
	CategoryHomeAndElectronics: "HomeAndElectronics",
	CategoryIncome:             "Income",
	CategoryInsurance:          "Insurance",
	CategoryMedical:            "Medical",
	CategoryPersonalCare:       "PersonalCare",
	CategoryRecurringExpenses:  "RecurringExpenses",
	CategoryRestaurant:         "Restaurant",
	CategoryTaxes:              "Taxes",
	CategoryTransit:            "Transit",
	CategoryTravelExpenses:     "TravelExpenses",
	CategoryVitamins:           "Vitamins",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Other"
}

// Emoji returns the display emoji for a category.
func (c Category) Emoji() string {
	switch c {
	case CategoryBank:
		return "🏦"
	case CategoryCar:
		return "🚗"
	case CategoryCash:
		return "🏧"
	case CategoryClothes:
		return "👚"
	case CategoryEntertainment:
		return "🎟️"
	case CategoryGift:
		return "🎁"
	case CategoryGrocery:
		return "🛒"
	case CategoryHome:
		return "🏠"
	case CategoryHomeImprovement:
		return "🛠️"
	case CategoryHomeAndElectronics:
		return "🛍️"
	case CategoryIncome:
		return "🤑"
	case CategoryInsurance:
		return "🛡️"
	case CategoryMedical:
		return "👩‍⚕️"
	case CategoryPersonalCare:
		return "💆‍"
	case CategoryRecurringExpenses:
		return "🔁"
	case CategoryRestaurant:
		return "🍽"
	case CategoryTaxes:
		return "💸"
	case CategoryTransit:
		return "🚇"
	case CategoryTravelExpenses:
		return "🛫"
	case CategoryVitamins:
		return "💊"
	case CategoryOther:
		return "❓"
	default:
		return "💲"
	}
}

// TagToCategory maps known tags to their category.
var TagToCategory = map[string]Category{
	"bank transfer":      CategoryBank,
	"credit card":        CategoryBank,
	"car":                CategoryCar,
	"atm":                CategoryCash,
	"clothes":            CategoryClothes,
	"dry cleaner":        CategoryClothes,
	"shoes":              CategoryClothes,
	"books":              CategoryEntertainment,
	"entertainment":      CategoryEntertainment,
	"gift":               CategoryGift,
	"donation":           CategoryGift,
	"grocery":            CategoryGrocery,
	"hoa":                CategoryHome,
	"mortgage":           CategoryHome,
	"home improvement":   CategoryHomeImprovement,
	"art supplies":       CategoryHomeAndElectronics,
	"art":                CategoryHomeAndElectronics,
	"electronics":        CategoryHomeAndElectronics,
	"flowers":            CategoryHomeAndElectronics,
	"furniture":          CategoryHomeAndElectronics,
	"household goods":    CategoryHomeAndElectronics,
	"printing":           CategoryHomeAndElectronics,
	"plants":             CategoryHomeAndElectronics,
	"credit card reward": CategoryIncome,
	"dividend":           CategoryIncome,
	"income":             CategoryIncome,
	"interest":           CategoryIncome,
	"insurance":          CategoryInsurance,
	"medical":            CategoryMedical,
	"personal care":      CategoryPersonalCare,
	"utility":            CategoryRecurringExpenses,
	"phone service":      CategoryRecurringExpenses,
	"internet":           CategoryRecurringExpenses,
	"membership fee":     CategoryRecurringExpenses,
	"restaurant":         CategoryRestaurant,
	"taxes":              CategoryTaxes,
	"transit":            CategoryTransit,
	"taxi":               CategoryTransit,
	"flight":             CategoryTravelExpenses,
	"lodging":            CategoryTravelExpenses,
	"rail":               CategoryTravelExpenses,
	"vitamins":           CategoryVitamins,
}

// CategoryOf derives the category of a transaction from its tags. Tags with
// no mapping are ignored. If the tags map to more than one distinct category
// the derivation is ambiguous and an error is returned; if they map to none,
// CategoryOther is returned.
func CategoryOf(t *Transaction) (Category, error) {
	var categories []Category
	for _, tag := range t.Tags {
		category, ok := TagToCategory[tag]
		if !ok {
			continue
		}
		seen := false
		for _, c := range categories {
			if c == category {
				seen = true
				break
			}
		}
		if !seen {
			categories = append(categories, category)
		}
	}

	switch len(categories) {
	case 0:
		return CategoryOther, nil
	case 1:
		return categories[0], nil
	default:
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = c.String()
		}
		return CategoryOther, fmt.Errorf("multiple categories: %s", strings.Join(names, ", "))
	}
}
