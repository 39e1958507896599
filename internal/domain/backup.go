package domain

import (
	"encoding/json"
	"time"
)

// BackupDocument bundles everything a user owns into one transportable document.
//
// On import a nil Catalog or Quotes means the section was absent or null and
// is left untouched. A non-nil pointer to an empty slice clears the section.
type BackupDocument struct {
	Company    *CompanyProfile `json:"company"`
	Catalog    *[]CatalogEntry `json:"catalog,omitempty"`
	Quotes     *[]SavedQuote   `json:"quotes,omitempty"`
	ExportedAt string          `json:"exportedAt"`
}

// ExportTimeLayout is the ISO-8601 layout of BackupDocument.ExportedAt.
const ExportTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// NewBackupDocument assembles an export. Nil slices are exported as empty lists.
func NewBackupDocument(company *CompanyProfile, catalog []CatalogEntry, quotes []SavedQuote, at time.Time) BackupDocument {
	if catalog == nil {
		catalog = []CatalogEntry{}
	}

	if quotes == nil {
		quotes = []SavedQuote{}
	}

	return BackupDocument{
		Company:    company,
		Catalog:    &catalog,
		Quotes:     &quotes,
		ExportedAt: at.UTC().Format(ExportTimeLayout),
	}
}

// ParseBackup decodes data as a backup document. Anything that is not a JSON
// object, including null, is rejected.
func ParseBackup(data []byte) (BackupDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return BackupDocument{}, NewValidationError("backup", "document is not valid JSON: "+err.Error())
	}

	if raw == nil {
		return BackupDocument{}, NewValidationError("backup", "document must be a JSON object")
	}

	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return BackupDocument{}, NewValidationError("backup", "document has an invalid shape: "+err.Error())
	}

	return doc, nil
}

// BackupFilename is the suggested download name for an export taken at at.
func BackupFilename(at time.Time) string {
	return "backup_" + at.Format(time.DateOnly) + ".json"
}
