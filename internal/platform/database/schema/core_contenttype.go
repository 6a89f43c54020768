package schema

// ContentTypeTable represents the 'core.contenttype' table
type ContentTypeTable struct {
	Table     string
	ID        string
	Name      string
	GroupID   string
	CreatedAt string
	UpdatedAt string
}

// ContentType is the schema definition for core.contenttype
var ContentType = ContentTypeTable{
	Table:     "core.contenttype",
	ID:        "id",
	Name:      "name",
	GroupID:   "groupid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns lists every column in insert order.
func (t ContentTypeTable) Columns() []string {
	return []string{t.ID, t.Name, t.GroupID, t.CreatedAt, t.UpdatedAt}
}
