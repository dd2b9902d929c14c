package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
	"github.com/arthur-debert/nanoenum/types"
)

// CreateExportArchive writes exportData as a zip file at outputPath
func CreateExportArchive(exportData *ExportData, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive file: %w", cerr)
		}
	}()

	zipWriter := zip.NewWriter(file)
	defer func() {
		if cerr := zipWriter.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close zip writer: %w", cerr)
		}
	}()

	if err := addCatalogToZip(zipWriter, exportData.Contents.Catalog); err != nil {
		return fmt.Errorf("failed to add catalog to zip: %w", err)
	}

	for _, objectFile := range exportData.Contents.Objects {
		if err := addObjectToZip(zipWriter, objectFile); err != nil {
			return fmt.Errorf("failed to add object %s to zip: %w", objectFile.Filename, err)
		}
	}

	return nil
}

// CreateExportArchiveToTempDir creates the archive in a new temporary
// directory and returns its path
func CreateExportArchiveToTempDir(exportData *ExportData) (string, error) {
	tempDir, err := os.MkdirTemp("", "nanoenum-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	archivePath := filepath.Join(tempDir, exportData.ArchiveFilename)
	if err := CreateExportArchive(exportData, archivePath); err != nil {
		if rerr := os.RemoveAll(tempDir); rerr != nil {
			slog.Warn("failed to clean up temp directory", "dir", tempDir, "error", rerr)
		}
		return "", err
	}

	return archivePath, nil
}

func addCatalogToZip(zipWriter *zip.Writer, catalogFile CatalogFile) error {
	header := &zip.FileHeader{
		Name:     catalogFile.Filename,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create catalog file in zip: %w", err)
	}

	jsonData, err := json.MarshalIndent(catalogFile.Contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog contents: %w", err)
	}

	if _, err := writer.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write catalog contents: %w", err)
	}
	return nil
}

func addObjectToZip(zipWriter *zip.Writer, objectFile ObjectFile) error {
	header := &zip.FileHeader{
		Name:     objectFile.Filename,
		Method:   zip.Deflate,
		Modified: objectFile.Modified,
	}

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create object file in zip: %w", err)
	}

	if _, err := writer.Write([]byte(objectFile.Content)); err != nil {
		return fmt.Errorf("failed to write object content: %w", err)
	}
	return nil
}

// ExtractExportArchive reads an archive back into export data
func ExtractExportArchive(archivePath string) (*ExportData, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	exportData := &ExportData{
		ArchiveFilename: filepath.Base(archivePath),
		Contents: ExportContent{
			Objects: make([]ObjectFile, 0),
		},
	}

	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}

		if file.Name == CatalogFilename {
			var data catalog.Data
			if err := json.Unmarshal(content, &data); err != nil {
				return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
			}
			exportData.Contents.Catalog = CatalogFile{Filename: file.Name, Contents: &data}
			continue
		}

		exportData.Contents.Objects = append(exportData.Contents.Objects, ObjectFile{
			Filename: file.Name,
			Modified: file.Modified,
			Content:  string(content),
		})
	}

	return exportData, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}

// Records returns the enumerations held by exportData. The catalog member
// wins; archives without one fall back to the object files.
func (d *ExportData) Records() ([]catalog.Entry, error) {
	if d.Contents.Catalog.Contents != nil {
		return d.Contents.Catalog.Contents.Records, nil
	}

	entries := make([]catalog.Entry, 0, len(d.Contents.Objects))
	for _, obj := range d.Contents.Objects {
		var r types.Record
		if err := json.Unmarshal([]byte(obj.Content), &r); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", obj.Filename, err)
		}
		entries = append(entries, catalog.Entry{
			Name:      r.TypeName,
			Record:    r,
			CreatedAt: obj.Modified,
			UpdatedAt: obj.Modified,
		})
	}
	return entries, nil
}
