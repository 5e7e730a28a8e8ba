package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewRepositories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")

	plain := NewRepositories(path, nil)
	assert.Same(t, plain.Catalog, plain.CourseStore)
	assert.Equal(t, path, plain.Catalog.Path())

	traced := NewRepositories(path, noop.NewTracerProvider().Tracer("test"))
	assert.IsType(t, &TracedCourseStore{}, traced.CourseStore)
}
