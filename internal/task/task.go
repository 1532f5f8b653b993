package task

import (
	"context"
	"errors"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// Errors surfaced by the runner and its pipeline.
var (
	// ErrNoImagesUploaded marks a task that declared images but had every
	// upload fail. Record creation is skipped for such tasks.
	ErrNoImagesUploaded = errors.New("no assets uploaded successfully")

	// ErrRunnerStopped is returned by Submit after Stop has been called.
	ErrRunnerStopped = errors.New("upload runner is stopped")
)

// AssetUploader pushes one local image file to the remote media library.
// Implementations own their network timeouts; the pipeline treats Upload
// as a blocking call and performs uploads sequentially to preserve the
// task's image order.
type AssetUploader interface {
	Upload(ctx context.Context, path string) (domain.UploadedImage, error)
}

// RecordCreator creates the product record referencing the uploaded
// images. The payload's image order is significant: the first image is
// the featured one.
type RecordCreator interface {
	Create(ctx context.Context, payload domain.ProductPayload) (domain.CreatedProduct, error)
}
