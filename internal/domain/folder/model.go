package folder

import "time"

// Folder is a named node in the client/month document tree.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// MonthFolderName formats the canonical month subfolder name, e.g.
// "2025-03 (March)".
func MonthFolderName(t time.Time) string {
	return t.Format("2006-01 (January)")
}

// MonthFolderPrefix formats the stable prefix of a month subfolder name,
// used for lookups that must not depend on the month's display name.
func MonthFolderPrefix(t time.Time) string {
	return t.Format("2006-01")
}
