package models

// Course is a single catalog entry. Code identifies a course but is not
// required to be unique.
type Course struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
}
