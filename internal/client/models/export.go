package models

import (
	"encoding/json"
	"time"
)

// ExportVersion is the document format written by Export.
const ExportVersion = 1

// ExportDocument is the JSON snapshot produced by export and consumed by
// import. Passwords stay encrypted.
type ExportDocument struct {
	Version     int          `json:"version"`
	ExportedAt  time.Time    `json:"exported_at"`
	Categories  []Category   `json:"categories"`
	Connections []Connection `json:"connections"`
}

// UnmarshalJSON accepts exported_at in any layout ParseTimestamp reads.
func (d *ExportDocument) UnmarshalJSON(b []byte) error {
	type plain ExportDocument
	var v plain
	aux := struct {
		*plain
		ExportedAt *Timestamp `json:"exported_at"`
	}{plain: &v}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.ExportedAt != nil {
		v.ExportedAt = time.Time(*aux.ExportedAt)
	}
	*d = ExportDocument(v)
	return nil
}

// ImportResult summarises what an import changed.
type ImportResult struct {
	CategoriesCreated int
	CategoriesReused  int
	ConnectionsAdded  int
}
