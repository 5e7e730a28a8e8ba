package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/filestorage"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// DefaultCatalogPath is the catalog document used when none is configured
const DefaultCatalogPath = "course_catalog.json"

// CourseStore persists the whole catalog as one document.
//
// Implementations provide no locking: two concurrent AppendCourse calls can
// both read the same catalog and the second write discards the first append.
// Callers that need correctness under concurrency must serialize writes.
type CourseStore interface {
	// LoadCourses returns every course in document order. A missing document
	// is an empty catalog.
	LoadCourses(ctx context.Context) ([]models.Course, error)
	// AppendCourse loads the catalog, appends course and rewrites the document
	AppendCourse(ctx context.Context, course models.Course) error
	// SaveCourses overwrites the document with exactly courses
	SaveCourses(ctx context.Context, courses []models.Course) error
}

// JSONCourseStore keeps the catalog as a pretty-printed JSON array
type JSONCourseStore struct {
	storage filestorage.DocumentStorage
	name    string
}

// NewJSONCourseStore creates a store backed by the document at path
func NewJSONCourseStore(path string) *JSONCourseStore {
	if path == "" {
		path = DefaultCatalogPath
	}
	return NewJSONCourseStoreWithStorage(filestorage.NewLocalStorage(filepath.Dir(path)), filepath.Base(path))
}

// NewJSONCourseStoreWithStorage creates a store over an arbitrary document storage
func NewJSONCourseStoreWithStorage(storage filestorage.DocumentStorage, name string) *JSONCourseStore {
	return &JSONCourseStore{storage: storage, name: name}
}

// Path returns the filesystem path of the catalog document
func (s *JSONCourseStore) Path() string {
	return s.storage.GetFullPath(s.name)
}

// LoadCourses reads the full catalog
func (s *JSONCourseStore) LoadCourses(ctx context.Context) ([]models.Course, error) {
	data, err := s.storage.ReadDocument(s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Course{}, nil
		}
		logger.Error().Err(err).Str("path", s.Path()).Msg("Error reading course catalog")
		return nil, fmt.Errorf("loading courses: %w: %w", apperrors.ErrCatalogIO, err)
	}

	var courses []models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		logger.Error().Err(err).Str("path", s.Path()).Msg("Error decoding course catalog")
		return nil, fmt.Errorf("loading courses: %w: %w", apperrors.ErrCatalogDecode, err)
	}
	if courses == nil {
		courses = []models.Course{}
	}

	return courses, nil
}

// AppendCourse adds course to the end of the catalog
func (s *JSONCourseStore) AppendCourse(ctx context.Context, course models.Course) error {
	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return err
	}

	courses = append(courses, course)
	return s.SaveCourses(ctx, courses)
}

// SaveCourses replaces the catalog with courses
func (s *JSONCourseStore) SaveCourses(ctx context.Context, courses []models.Course) error {
	data, err := encodeCatalog(courses)
	if err != nil {
		return fmt.Errorf("encoding courses: %w", err)
	}

	if err := s.storage.WriteDocument(s.name, data); err != nil {
		return fmt.Errorf("saving courses: %w: %w", apperrors.ErrCatalogIO, err)
	}

	return nil
}

// encodeCatalog renders courses as a JSON array indented by four spaces,
// without a trailing newline and without HTML escaping.
func encodeCatalog(courses []models.Course) ([]byte, error) {
	if courses == nil {
		courses = []models.Course{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(courses); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
