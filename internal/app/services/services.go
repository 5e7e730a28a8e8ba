// Package services holds the catalog business logic.
//
// FindByCode and RemoveByCode are pure functions over an in-memory catalog.
// CourseService composes them with a repositories.CourseStore, one whole
// document load and at most one whole document write per operation.
package services
