package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Package struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:100;not null;unique" json:"name"`
	Price    int       `gorm:"not null" json:"price"`
	Courses  string    `gorm:"type:text;not null" json:"courses"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseList splits the stored course text on newlines or commas.
func (p *Package) CourseList() []string {
	fields := strings.FieldsFunc(p.Courses, func(r rune) bool {
		return r == '\n' || r == ','
	})
	courses := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			courses = append(courses, trimmed)
		}
	}
	return courses
}
