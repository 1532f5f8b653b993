package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Task. Each wraps ErrValidation so callers
// can match the whole family with a single errors.Is check.
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrInvalidTaskPrice = fmt.Errorf("%w: task price must be a non-negative number", ErrValidation)
	ErrInvalidCategory  = fmt.Errorf("%w: task category ID must be positive", ErrValidation)
)

// Task represents one unit of publishing work: a product to create in the
// store together with the local image files to upload for it. The order of
// ImagePaths is significant; the first image that uploads successfully
// becomes the product's featured image. A Task is immutable once submitted
// and is shared, not copied, by its Result.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	CategoryID  int       `json:"category_id"`
	ImagePaths  []string  `json:"image_paths"`
	SKU         string    `json:"sku,omitempty"`
	BatchID     string    `json:"batch_id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewTask creates a Task with a fresh ID and a normalized price.
// ImagePaths may be empty; a task without images is created without a
// gallery. Returns an error if validation fails.
func NewTask(title, description, price string, categoryID int, imagePaths []string) (*Task, error) {
	normalized, err := NormalizePrice(price)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Price:       normalized,
		CategoryID:  categoryID,
		ImagePaths:  imagePaths,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	price, err := strconv.ParseFloat(t.Price, 64)
	if err != nil || price < 0 {
		return ErrInvalidTaskPrice
	}

	if t.CategoryID <= 0 {
		return ErrInvalidCategory
	}

	return nil
}

// Payload builds the product-creation payload for this task from the
// images that uploaded successfully. The images slice must preserve the
// task's original image order; the first entry is the featured image.
func (t *Task) Payload(images []UploadedImage) ProductPayload {
	refs := make([]ImageRef, 0, len(images))
	for _, img := range images {
		refs = append(refs, ImageRef{ID: img.ID})
	}

	return ProductPayload{
		Name:         t.Title,
		Description:  t.Description,
		Type:         "simple",
		RegularPrice: t.Price,
		Categories:   []CategoryRef{{ID: t.CategoryID}},
		SKU:          t.SKU,
		Images:       refs,
	}
}

// NormalizePrice converts a raw price string into the two-decimal format
// the store expects. Returns an error for unparseable or negative values.
func NormalizePrice(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPrice, raw)
	}
	if price < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPrice, raw)
	}
	return strconv.FormatFloat(price, 'f', 2, 64), nil
}
