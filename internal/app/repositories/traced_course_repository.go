package repositories

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yigit/coursecatalog/internal/app/models"
)

// Span names emitted for store operations
const (
	SpanLoadCourses  = "load_courses"
	SpanSaveCourses  = "save_courses"
	SpanWriteCourses = "write_courses"
)

// TracedCourseStore wraps a CourseStore and brackets every call in a span.
// Results and errors are passed through untouched.
type TracedCourseStore struct {
	next   CourseStore
	tracer trace.Tracer
}

// NewTracedCourseStore decorates next with spans from tracer
func NewTracedCourseStore(next CourseStore, tracer trace.Tracer) *TracedCourseStore {
	return &TracedCourseStore{next: next, tracer: tracer}
}

// LoadCourses implements CourseStore
func (s *TracedCourseStore) LoadCourses(ctx context.Context) ([]models.Course, error) {
	ctx, span := s.tracer.Start(ctx, SpanLoadCourses)
	defer span.End()

	courses, err := s.next.LoadCourses(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("course_count", len(courses)))
	return courses, nil
}

// AppendCourse implements CourseStore
func (s *TracedCourseStore) AppendCourse(ctx context.Context, course models.Course) error {
	ctx, span := s.tracer.Start(ctx, SpanSaveCourses)
	defer span.End()

	err := s.next.AppendCourse(ctx, course)
	if err != nil {
		recordSpanError(span, err)
	}
	return err
}

// SaveCourses implements CourseStore
func (s *TracedCourseStore) SaveCourses(ctx context.Context, courses []models.Course) error {
	ctx, span := s.tracer.Start(ctx, SpanWriteCourses)
	defer span.End()

	span.SetAttributes(attribute.Int("course_count", len(courses)))
	err := s.next.SaveCourses(ctx, courses)
	if err != nil {
		recordSpanError(span, err)
	}
	return err
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
