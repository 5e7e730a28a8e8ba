package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yigit/coursecatalog/internal/app/models"
)

func newTracedStore(t *testing.T) (*TracedCourseStore, *tracetest.SpanRecorder, string) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	path := filepath.Join(t.TempDir(), "course_catalog.json")
	return NewTracedCourseStore(NewJSONCourseStore(path), tp.Tracer("test")), recorder, path
}

func spanNames(spans []sdktrace.ReadOnlySpan) []string {
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	return names
}

func TestTracedStoreSpanNames(t *testing.T) {
	store, recorder, _ := newTracedStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendCourse(ctx, models.Course{Code: "CS101"}))
	_, err := store.LoadCourses(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveCourses(ctx, []models.Course{}))

	ended := recorder.Ended()
	assert.Equal(t, []string{SpanSaveCourses, SpanLoadCourses, SpanWriteCourses}, spanNames(ended))
	assert.Equal(t, int64(1), courseCount(t, ended[1]))
	assert.Equal(t, int64(0), courseCount(t, ended[2]))
}

func courseCount(t *testing.T, span sdktrace.ReadOnlySpan) int64 {
	t.Helper()
	for _, kv := range span.Attributes() {
		if kv.Key == "course_count" {
			return kv.Value.AsInt64()
		}
	}
	t.Fatalf("span %q has no course_count", span.Name())
	return 0
}

func TestTracedStorePassesErrorsThrough(t *testing.T) {
	store, recorder, path := newTracedStore(t)
	require.NoError(t, os.WriteFile(path, []byte("]"), 0o644))

	courses, err := store.LoadCourses(context.Background())
	require.Error(t, err)
	assert.Nil(t, courses)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.NotEmpty(t, ended[0].Events())
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestTracedStoreMissingDocument(t *testing.T) {
	store, recorder, _ := newTracedStore(t)

	courses, err := store.LoadCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}
