package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
	"github.com/stretchr/testify/require"
)

// mockUploader implements AssetUploader with an injectable function and
// records every path it was asked to upload.
type mockUploader struct {
	mu    sync.Mutex
	paths []string

	// UploadFn decides the outcome per path. Defaults to success with a
	// sequential media ID.
	UploadFn func(path string) (domain.UploadedImage, error)

	// UploadCtxFn takes precedence over UploadFn when the test needs to
	// observe the call's context.
	UploadCtxFn func(ctx context.Context, path string) (domain.UploadedImage, error)

	nextID int64
}

func (m *mockUploader) Upload(ctx context.Context, path string) (domain.UploadedImage, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	ctxFn := m.UploadCtxFn
	fn := m.UploadFn
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	if ctxFn != nil {
		return ctxFn(ctx, path)
	}
	if fn != nil {
		return fn(path)
	}
	return domain.UploadedImage{ID: id, URL: "https://store.example/media/" + path}, nil
}

func (m *mockUploader) uploadedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// mockCreator implements RecordCreator with an injectable function and
// records every payload it received.
type mockCreator struct {
	mu       sync.Mutex
	payloads []domain.ProductPayload

	// CreateFn decides the outcome per payload. Defaults to success.
	CreateFn func(payload domain.ProductPayload) (domain.CreatedProduct, error)
}

func (m *mockCreator) Create(_ context.Context, payload domain.ProductPayload) (domain.CreatedProduct, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	fn := m.CreateFn
	n := int64(len(m.payloads))
	m.mu.Unlock()

	if fn != nil {
		return fn(payload)
	}
	return domain.CreatedProduct{ID: 1000 + n, Permalink: "https://store.example/product/" + payload.Name}, nil
}

func (m *mockCreator) createdPayloads() []domain.ProductPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ProductPayload(nil), m.payloads...)
}

var errMockUpload = errors.New("mock upload failure")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// newTestRunner builds a runner wired to the given mocks and registers its
// shutdown with the test cleanup.
func newTestRunner(t *testing.T, workers int, uploader AssetUploader, creator RecordCreator) *Runner {
	t.Helper()

	config := DefaultRunnerConfig()
	config.WorkerCount = workers

	runner := NewRunner(uploader, creator, config, setupTestLogger())
	t.Cleanup(runner.Stop)
	return runner
}

func newTestTask(t *testing.T, title string, imagePaths []string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, "test product", "9.99", 5, imagePaths)
	require.NoError(t, err)
	return task
}

// collectResults registers a completion callback that forwards every
// result into the returned channel.
func collectResults(runner *Runner, capacity int) <-chan domain.Result {
	results := make(chan domain.Result, capacity)
	runner.SetCompletionCallback(func(res domain.Result) {
		results <- res
	})
	return results
}

// awaitResult receives one result or fails the test after a timeout.
func awaitResult(t *testing.T, results <-chan domain.Result) domain.Result {
	t.Helper()

	select {
	case res := <-results:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a result")
		return domain.Result{}
	}
}
