// Package bulk turns local directories and CSV files into batches of
// upload tasks. It is a producer for the upload queue; per-entry problems
// are collected into a report rather than aborting the batch.
package bulk

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// imageExtensions lists the file extensions treated as product images.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true,
}

// Report summarizes one batch import: how many tasks were produced and
// what was skipped.
type Report struct {
	BatchID string
	Tasks   int
	Errors  []string
}

// Scanner reads product folders from disk.
//
// Expected layout, one folder per product:
//
//	ParentDirectory/
//	    ProductA/
//	        title.txt
//	        description.txt
//	        price.txt
//	        sku.txt        (optional)
//	        images/        (or images directly in the folder)
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a directory scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logger.With("component", "bulk_scanner")}
}

// Scan walks the product folders under dir and builds one task per valid
// folder, all sharing a fresh batch ID. Folders that fail to parse are
// recorded in the report and skipped.
func (s *Scanner) Scan(dir string, categoryID int) ([]*domain.Task, *Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	report := &Report{BatchID: uuid.NewString()}
	var tasks []*domain.Task

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		folder := filepath.Join(dir, entry.Name())
		task, err := s.readProductFolder(folder, categoryID)
		if err != nil {
			s.logger.Warn("skipping product folder",
				"folder", entry.Name(),
				"error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}

		task.BatchID = report.BatchID
		tasks = append(tasks, task)
	}

	report.Tasks = len(tasks)
	s.logger.Info("directory scan finished",
		"dir", dir,
		"batch_id", report.BatchID,
		"tasks", report.Tasks,
		"errors", len(report.Errors))

	return tasks, report, nil
}

func (s *Scanner) readProductFolder(folder string, categoryID int) (*domain.Task, error) {
	title, err := readRequiredFile(folder, "title.txt")
	if err != nil {
		return nil, err
	}
	description, err := readRequiredFile(folder, "description.txt")
	if err != nil {
		return nil, err
	}
	price, err := readRequiredFile(folder, "price.txt")
	if err != nil {
		return nil, err
	}

	// sku.txt is optional.
	sku, _ := readFile(filepath.Join(folder, "sku.txt"))

	images := listImages(filepath.Join(folder, "images"))
	if len(images) == 0 {
		// Fall back to images sitting directly in the product folder.
		images = listImages(folder)
	}

	task, err := domain.NewTask(title, description, price, categoryID, images)
	if err != nil {
		return nil, err
	}
	task.SKU = sku
	return task, nil
}

func readRequiredFile(folder, name string) (string, error) {
	content, err := readFile(filepath.Join(folder, name))
	if err != nil {
		return "", fmt.Errorf("missing %s", name)
	}
	if content == "" {
		return "", fmt.Errorf("%s is empty", name)
	}
	return content, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// listImages returns the supported image files directly inside dir,
// sorted by name so the featured image is deterministic.
func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(images)
	return images
}

// IsImageFile reports whether the file name has a supported image
// extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}
