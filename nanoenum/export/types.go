package export

import (
	"time"

	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
)

// CatalogFilename is the archive member holding the exported catalog
const CatalogFilename = "catalog.json"

// ExportData represents the complete export: the catalog subset plus one
// file per enumeration
type ExportData struct {
	ArchiveFilename string        `json:"archive-filename"`
	Contents        ExportContent `json:"contents"`
}

// ExportContent contains the catalog and object files to be exported
type ExportContent struct {
	Catalog CatalogFile  `json:"catalog"`
	Objects []ObjectFile `json:"objects"`
}

// CatalogFile is the catalog.json member of an archive
type CatalogFile struct {
	Filename string        `json:"filename"`
	Contents *catalog.Data `json:"contents"`
}

// ObjectFile is one serialized enumeration in the archive
type ObjectFile struct {
	Filename string    `json:"filename"`
	Modified time.Time `json:"modified"`
	Content  string    `json:"content"`
}

// ExportOptions configures what data to export
type ExportOptions struct {
	// Names selects enumeration types; empty exports the whole catalog
	Names []string `json:"names,omitempty"`
}

// ExportMetadata describes what an export would contain
type ExportMetadata struct {
	EnumerationCount   int               `json:"enumeration_count"`
	Enumerations       []EnumerationInfo `json:"enumerations"`
	EstimatedSizeBytes int64             `json:"estimated_size_bytes"`
}

// EnumerationInfo contains basic information about an exported enumeration
type EnumerationInfo struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Filename string `json:"filename"` // The filename it would have in the archive
}
