package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
)

// GenerateExportData builds the export structure for the selected entries
// without touching the file system
func GenerateExportData(c *catalog.Catalog, options ExportOptions) (*ExportData, error) {
	data, err := c.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	entries, err := selectEntries(data.Records, options)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05")
	exportData := &ExportData{
		ArchiveFilename: fmt.Sprintf("nanoenum-export-%s.zip", timestamp),
		Contents: ExportContent{
			Catalog: CatalogFile{
				Filename: CatalogFilename,
				Contents: &catalog.Data{Records: entries, Metadata: data.Metadata},
			},
			Objects: make([]ObjectFile, 0, len(entries)),
		},
	}

	for _, e := range entries {
		content, err := json.MarshalIndent(e.Record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", e.Name, err)
		}
		exportData.Contents.Objects = append(exportData.Contents.Objects, ObjectFile{
			Filename: generateFilename(e),
			Modified: e.UpdatedAt,
			Content:  string(content),
		})
	}

	return exportData, nil
}

// selectEntries keeps catalog order; every requested name must exist
func selectEntries(all []catalog.Entry, options ExportOptions) ([]catalog.Entry, error) {
	if len(options.Names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(options.Names))
	for _, name := range options.Names {
		wanted[name] = true
	}

	selected := make([]catalog.Entry, 0, len(options.Names))
	for _, e := range all {
		if wanted[e.Name] {
			selected = append(selected, e)
			delete(wanted, e.Name)
		}
	}
	for _, name := range options.Names {
		if wanted[name] {
			return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, name)
		}
	}
	return selected, nil
}
