package store

// Reserved top-level keys stamped by the store. Field maps may not use them.
const (
	KeyID        = "id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// Record is an opaque field map plus the identity and timestamps the store
// stamps on it. ID and CreatedAt never change after creation; UpdatedAt is
// empty until the first mutation.
type Record struct {
	ID        string         `json:"id"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Fields    map[string]any `json:"fields"`
}

// clone returns a copy whose field map is independent of the original. The
// store hands out clones only, so callers never hold a live reference.
func (r *Record) clone() Record {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Record{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Fields:    fields,
	}
}

// Map flattens the record into its wire form: the opaque fields plus the
// reserved id and timestamp keys.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[KeyID] = r.ID
	out[KeyCreatedAt] = r.CreatedAt
	if r.UpdatedAt != "" {
		out[KeyUpdatedAt] = r.UpdatedAt
	}
	return out
}
