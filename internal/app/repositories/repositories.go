package repositories

import (
	"go.opentelemetry.io/otel/trace"
)

// Repositories holds all the repository instances
type Repositories struct {
	// CourseStore is the store handed to services, traced when enabled
	CourseStore CourseStore
	// Catalog is the undecorated JSON document store
	Catalog *JSONCourseStore
}

// NewRepositories initializes all repositories. A nil tracer leaves the
// store untraced.
func NewRepositories(catalogPath string, tracer trace.Tracer) *Repositories {
	catalog := NewJSONCourseStore(catalogPath)

	var store CourseStore = catalog
	if tracer != nil {
		store = NewTracedCourseStore(catalog, tracer)
	}

	return &Repositories{
		CourseStore: store,
		Catalog:     catalog,
	}
}
