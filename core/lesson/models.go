package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smartjhs/smartjhs/core"
)

// Levels
const (
	LevelPrimary = "primary"
	LevelJHS     = "jhs"
	LevelSHS     = "shs"
)

var (
	Levels = []string{LevelPrimary, LevelJHS, LevelSHS}

	// OrderingFields are the fields lessons can be sorted by.
	OrderingFields = []string{"title", "subject", "level", "position", "created_at", "updated_at"}

	// DefaultOrdering applies when no ordering is requested.
	DefaultOrdering = []core.DBOrdering{{Field: "position", Ascending: true}, {Field: "title", Ascending: true}}
)

type Lesson struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subject   string    `json:"subject" db:"subject"`
	Level     string    `json:"level" db:"level"`
	Summary   string    `json:"summary" db:"summary"`
	Content   string    `json:"content" db:"content"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	Title    string `json:"title" yaml:"title" validate:"required,max=200"`
	Subject  string `json:"subject" yaml:"subject" validate:"required,max=100"`
	Level    string `json:"level" yaml:"level" validate:"required,level"`
	Summary  string `json:"summary" yaml:"summary" validate:"max=1000"`
	Content  string `json:"content" yaml:"content" validate:"contentsize"`
	Position int    `json:"position" yaml:"position" validate:"gte=0"`
}

func (nl *NewLesson) clean() {
	nl.Title = core.CleanString(nl.Title)
	nl.Subject = core.CleanString(nl.Subject)
	nl.Level = core.CleanString(nl.Level, true /* lower */)
	nl.Summary = core.CleanString(nl.Summary)
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.clean()
	return validate.Struct(nl)
}

// ImportLesson is a lesson record of an import file. Records with a known ID replace the stored lesson.
type ImportLesson struct {
	ID        string `json:"id" yaml:"id" validate:"omitempty,uuid"`
	NewLesson `yaml:",inline"`
}

func (il *ImportLesson) Validate(validate *validator.Validate) error {
	il.ID = core.CleanString(il.ID, true /* lower */)
	il.clean()
	return validate.Struct(il)
}

// UpdateLesson defines what information may be provided to modify an existing Lesson.
// Empty strings and nil pointers keep the current value.
type UpdateLesson struct {
	Title    string  `json:"title" validate:"omitempty,max=200"`
	Subject  string  `json:"subject" validate:"omitempty,max=100"`
	Level    string  `json:"level" validate:"omitempty,level"`
	Summary  *string `json:"summary" validate:"omitempty,max=1000"`
	Content  *string `json:"content" validate:"omitempty,contentsize"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate, orig Lesson) error {
	if title := core.CleanString(ul.Title); title != "" {
		ul.Title = title
	} else {
		ul.Title = orig.Title
	}

	if subject := core.CleanString(ul.Subject); subject != "" {
		ul.Subject = subject
	} else {
		ul.Subject = orig.Subject
	}

	if level := core.CleanString(ul.Level, true /* lower */); level != "" {
		ul.Level = level
	} else {
		ul.Level = orig.Level
	}

	if ul.Summary != nil {
		summary := core.CleanString(*ul.Summary)
		ul.Summary = &summary
	}
	return validate.Struct(ul)
}

// apply returns orig with the fields of ul set.
func (ul UpdateLesson) apply(orig Lesson) Lesson {
	orig.Title = ul.Title
	orig.Subject = ul.Subject
	orig.Level = ul.Level
	if ul.Summary != nil {
		orig.Summary = *ul.Summary
	}
	if ul.Content != nil {
		orig.Content = *ul.Content
	}
	if ul.Position != nil {
		orig.Position = *ul.Position
	}
	return orig
}

type QueryFilter struct {
	Search  string `query:"search"`
	Subject string `query:"subject"`
	Level   string `query:"level"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Subject == "" && qf.Level == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Subject = core.CleanString(qf.Subject)
	qf.Level = core.CleanString(qf.Level, true /* lower */)
}
