package bulk

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// csv column names. Header matching is case-insensitive and ignores
// surrounding whitespace.
const (
	colTitle       = "title"
	colDescription = "description"
	colPrice       = "price"
	colSKU         = "sku"
	colImagesPath  = "images_path"
)

var requiredColumns = []string{colTitle, colDescription, colPrice, colImagesPath}

// ReadCSV imports product rows from a CSV file into a batch of tasks.
// Required columns: title, description, price, images_path; sku is
// optional. The images_path cell may name a single image, a directory of
// images, or several of either separated by ";" or ",". Rows that fail to
// parse are recorded in the report and skipped.
func ReadCSV(path string, categoryID int, logger *slog.Logger) ([]*domain.Task, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: CSV file has no header row", domain.ErrInvalidFormat)
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, nil, err
	}

	report := &Report{BatchID: uuid.NewString()}
	var tasks []*domain.Task

	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, after the header

		task, err := rowToTask(record, columns, categoryID)
		if err != nil {
			logger.Warn("skipping CSV row", "row", rowNum, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		task.BatchID = report.BatchID
		tasks = append(tasks, task)
	}

	report.Tasks = len(tasks)
	logger.Info("CSV import finished",
		"path", path,
		"batch_id", report.BatchID,
		"tasks", report.Tasks,
		"errors", len(report.Errors))

	return tasks, report, nil
}

// mapColumns resolves header names to indices and checks the required
// ones are present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s",
			domain.ErrInvalidFormat, strings.Join(missing, ", "))
	}

	return columns, nil
}

func rowToTask(record []string, columns map[string]int, categoryID int) (*domain.Task, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	task, err := domain.NewTask(cell(colTitle), cell(colDescription), cell(colPrice), categoryID,
		resolveImages(cell(colImagesPath)))
	if err != nil {
		return nil, err
	}
	task.SKU = cell(colSKU)
	return task, nil
}

// resolveImages expands an images_path cell into concrete image files.
// Each ";"- or ","-separated element may be an image file or a directory
// of images; anything unresolvable is dropped.
func resolveImages(value string) []string {
	if value == "" {
		return nil
	}

	var images []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		info, err := os.Stat(part)
		switch {
		case err != nil:
			continue
		case info.IsDir():
			images = append(images, listImages(part)...)
		case IsImageFile(part):
			images = append(images, part)
		}
	}
	return images
}
