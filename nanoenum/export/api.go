// Package export writes catalogs of serialized enumerations to zip archives
// and reads them back.
//
// An archive holds catalog.json, the selected catalog entries, plus one
// <uuid>-<name>.json file per enumeration containing its serialized record.
// Generating the export data and writing the zip are separate steps so the
// data can be inspected without touching the file system.
package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
)

// maxParallelExtract bounds the archives read at once by ImportAll
const maxParallelExtract = 4

// Export creates an archive of the selected enumerations in a temporary
// directory and returns its path
//
//	archivePath, err := Export(c, ExportOptions{})
//	archivePath, err := Export(c, ExportOptions{Names: []string{"Galaxy"}})
func Export(c *catalog.Catalog, options ExportOptions) (string, error) {
	exportData, err := GenerateExportData(c, options)
	if err != nil {
		return "", fmt.Errorf("failed to generate export data: %w", err)
	}

	archivePath, err := CreateExportArchiveToTempDir(exportData)
	if err != nil {
		return "", fmt.Errorf("failed to create export archive: %w", err)
	}
	return archivePath, nil
}

// ExportToPath creates the archive at outputPath
func ExportToPath(c *catalog.Catalog, options ExportOptions, outputPath string) error {
	exportData, err := GenerateExportData(c, options)
	if err != nil {
		return fmt.Errorf("failed to generate export data: %w", err)
	}

	if err := CreateExportArchive(exportData, outputPath); err != nil {
		return fmt.Errorf("failed to create export archive: %w", err)
	}
	return nil
}

// Import adds the enumerations of an archive to c. Names already in the
// catalog are skipped and returned.
func Import(c *catalog.Catalog, archivePath string) ([]string, error) {
	exportData, err := ExtractExportArchive(archivePath)
	if err != nil {
		return nil, err
	}

	entries, err := exportData.Records()
	if err != nil {
		return nil, err
	}

	skipped, err := c.Import(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to import archive: %w", err)
	}
	return skipped, nil
}

// ImportAll imports several archives into c. Archives are read
// concurrently but imported in argument order, so on a name clash the
// earlier archive wins. The skipped names of all archives are returned.
func ImportAll(ctx context.Context, c *catalog.Catalog, archivePaths []string) ([]string, error) {
	extracted := make([][]catalog.Entry, len(archivePaths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExtract)
	for i, path := range archivePaths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			exportData, err := ExtractExportArchive(path)
			if err != nil {
				return err
			}
			entries, err := exportData.Records()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			extracted[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	skipped := []string{}
	for i, entries := range extracted {
		s, err := c.Import(entries)
		if err != nil {
			return skipped, fmt.Errorf("failed to import %s: %w", archivePaths[i], err)
		}
		skipped = append(skipped, s...)
	}
	return skipped, nil
}

// GetExportMetadata describes what an export would contain without
// creating an archive
func GetExportMetadata(c *catalog.Catalog, options ExportOptions) (*ExportMetadata, error) {
	exportData, err := GenerateExportData(c, options)
	if err != nil {
		return nil, err
	}

	entries := exportData.Contents.Catalog.Contents.Records
	metadata := &ExportMetadata{
		EnumerationCount: len(entries),
		Enumerations:     make([]EnumerationInfo, 0, len(entries)),
	}
	for i, e := range entries {
		metadata.Enumerations = append(metadata.Enumerations, EnumerationInfo{
			UUID:     e.UUID,
			Name:     e.Name,
			Members:  len(e.Record.Members),
			Filename: exportData.Contents.Objects[i].Filename,
		})
		metadata.EstimatedSizeBytes += int64(len(exportData.Contents.Objects[i].Content)) + 200
	}
	return metadata, nil
}
