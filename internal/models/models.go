package models

// Category buckets a food entry. The set is closed; records never carry a
// category outside it.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
	Snacks    Category = "snacks"
	Drinks    Category = "drinks"
	Vitamins  Category = "vitamins"
)

// All lists the categories in display order.
var All = []Category{Breakfast, Lunch, Dinner, Snacks, Drinks, Vitamins}

var labels = map[Category]string{
	Breakfast: "Breakfast",
	Lunch:     "Lunch",
	Dinner:    "Dinner",
	Snacks:    "Snacks",
	Drinks:    "Drinks",
	Vitamins:  "Vitamins/Supplements",
}

func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory resolves user input to a category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// FoodEntry is one logged item. Immutable once created, except deletion.
type FoodEntry struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Time     string   `json:"time"` // display-only clock string, e.g. "8:15 AM"
	Category Category `json:"category"`
}

// DayRecord holds everything logged for one canonical calendar date.
// Date doubles as the storage key.
type DayRecord struct {
	Date    string      `json:"date"`
	Entries []FoodEntry `json:"entries"`
	Notes   string      `json:"notes"`
}

// EmptyDay is the well-defined default for dates with nothing stored.
func EmptyDay(date string) DayRecord {
	return DayRecord{Date: date, Entries: []FoodEntry{}}
}

// SummaryRecord is the immutable rollup of one completed day. Data is a
// verbatim snapshot of the source DayRecord at rollup time, independent of
// anything that happens to the live record afterwards.
type SummaryRecord struct {
	Date           string     `json:"date"`
	TotalEntries   int        `json:"totalEntries"`
	CategoriesUsed []Category `json:"categoriesUsed"`
	HasNotes       bool       `json:"hasNotes"`
	Data           DayRecord  `json:"data"`
}

// CategoryCount pairs a category with its entry count across the history.
type CategoryCount struct {
	Category Category
	Count    int
}

// Stats is the derived aggregate over all summarized days.
type Stats struct {
	TotalDays         int
	TotalEntries      int
	DaysWithNotes     int
	AvgEntriesPerDay  float64
	CategoryBreakdown []CategoryCount
}
