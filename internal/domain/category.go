package domain

// UncategorizedID is the reserved bucket for entries whose category is
// unknown or no longer exists. Aggregation never drops an entry because
// its category cannot be resolved.
const UncategorizedID = "uncategorized"

// Category is a spending category.
type Category struct {
	ID   string
	Name string
}

// CategoryMap resolves category IDs. It is passed explicitly into
// aggregation and alert evaluation; there is no process-wide registry.
type CategoryMap map[string]Category

// Resolve returns the bucket ID an entry with the given category should
// aggregate under.
func (m CategoryMap) Resolve(id string) string {
	if _, ok := m[id]; ok {
		return id
	}
	return UncategorizedID
}

// Name returns a display name for a bucket ID.
func (m CategoryMap) Name(id string) string {
	if c, ok := m[id]; ok {
		return c.Name
	}
	return "Uncategorized"
}
