package schema

// ContentTypeGroupTable represents the 'core.contenttypegroup' table
type ContentTypeGroupTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// ContentTypeGroup is the schema definition for core.contenttypegroup
var ContentTypeGroup = ContentTypeGroupTable{
	Table:     "core.contenttypegroup",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

// Columns lists every column in insert order.
func (t ContentTypeGroupTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.CreatedAt}
}
