package services

import (
	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

// FindByCode returns the first course whose code equals code
func FindByCode(courses []models.Course, code string) (*models.Course, error) {
	for i := range courses {
		if courses[i].Code == code {
			course := courses[i]
			return &course, nil
		}
	}
	return nil, apperrors.NewCourseNotFoundError(code)
}

// RemoveByCode returns a new slice holding every course whose code differs
// from code, in the original order. The input is never modified.
func RemoveByCode(courses []models.Course, code string) []models.Course {
	kept := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if c.Code != code {
			kept = append(kept, c)
		}
	}
	return kept
}
