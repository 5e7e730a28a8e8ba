package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/repositories"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/metrics"
)

// CourseService defines the catalog operations used by the handlers
type CourseService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, code string) (*models.Course, error)
	AddCourse(ctx context.Context, course models.Course) error
	DeleteCourse(ctx context.Context, code string) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store   repositories.CourseStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCourseService creates a new course service instance. m may be nil.
func NewCourseService(store repositories.CourseStore, m *metrics.Metrics, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// ListCourses returns the whole catalog in insertion order
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		s.metrics.RecordCourseOperation("list", metrics.ResultError)
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	s.metrics.RecordCourseOperation("list", metrics.ResultSuccess)
	s.metrics.SetCatalogSize(len(courses))
	return courses, nil
}

// GetCourse returns the first course with the given code
func (s *courseServiceImpl) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		s.metrics.RecordCourseOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course, err := FindByCode(courses, code)
	if err != nil {
		s.metrics.RecordCourseOperation("get", metrics.ResultNotFound)
		return nil, err
	}

	s.metrics.RecordCourseOperation("get", metrics.ResultSuccess)
	return course, nil
}

// AddCourse appends course to the catalog. Duplicate codes are accepted.
func (s *courseServiceImpl) AddCourse(ctx context.Context, course models.Course) error {
	if err := s.store.AppendCourse(ctx, course); err != nil {
		s.metrics.RecordCourseOperation("add", metrics.ResultError)
		return fmt.Errorf("error adding course: %w", err)
	}

	s.metrics.RecordCourseOperation("add", metrics.ResultSuccess)
	s.logger.Info().Str("code", course.Code).Str("name", course.Name).Msg("Course added")
	return nil
}

// DeleteCourse removes every course with the given code. Deleting an absent
// code rewrites the catalog unchanged and is not an error.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, code string) error {
	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		s.metrics.RecordCourseOperation("delete", metrics.ResultError)
		return fmt.Errorf("error deleting course: %w", err)
	}

	remaining := RemoveByCode(courses, code)
	if err := s.store.SaveCourses(ctx, remaining); err != nil {
		s.metrics.RecordCourseOperation("delete", metrics.ResultError)
		return fmt.Errorf("error deleting course: %w", err)
	}

	removed := len(courses) - len(remaining)
	if removed == 0 {
		s.metrics.RecordCourseOperation("delete", metrics.ResultNotFound)
	} else {
		s.metrics.RecordCourseOperation("delete", metrics.ResultSuccess)
	}
	s.logger.Info().Str("code", code).Int("removed", removed).Msg("Course deleted")
	return nil
}

// IsNotFound reports whether err means no course matched
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrCourseNotFound)
}
