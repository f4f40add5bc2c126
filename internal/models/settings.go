package models

// SettingsCollection holds one document per user, keyed by user ID.
const SettingsCollection = "settings"

// CategoriesField is the settings field carrying the user's category list.
const CategoriesField = "transaction_categories"

// DefaultCategories is served whenever a user has no stored category list,
// or the stored list is corrupted.
var DefaultCategories = []string{
	"Food", "Shopping", "Transportation", "Bills",
	"Entertainment", "Health", "Groceries", "Other",
}

// CategoriesFromSettings reads the category list out of a settings document.
// The second return is false when the field is missing or not a string list.
func CategoriesFromSettings(data map[string]any) ([]string, bool) {
	return asStringSlice(data[CategoriesField])
}
