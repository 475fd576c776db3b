package lesson

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
)

var (
	// errors
	ErrNotFound = errors.New("lesson not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		// QueryLessons applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Lesson.Title or Lesson.Summary.
		QueryLessons(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Lesson, error)
		GetLesson(ctx context.Context, id string) (Lesson, error)
		// UpdateLesson saves every field of l except CreatedAt.
		UpdateLesson(ctx context.Context, l Lesson) (Lesson, error)
		// UpdateOrCreateLesson updates the lesson with l.ID, creating it when it does not exist.
		UpdateOrCreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, ids ...string) (int, error)
	}

	Service struct {
		repo     Repository
		renderer *content.Renderer
		logger   core.Logger
	}
)

func NewService(repo Repository, renderer *content.Renderer, logger core.Logger) *Service {
	return &Service{repo: repo, renderer: renderer, logger: logger}
}

func now() time.Time {
	return nowFunc().UTC().Truncate(time.Microsecond)
}

func (svc *Service) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	tstamp := now()
	l := Lesson{
		Title:     nl.Title,
		Subject:   nl.Subject,
		Level:     nl.Level,
		Summary:   nl.Summary,
		Content:   nl.Content,
		Position:  nl.Position,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	return svc.repo.CreateLesson(ctx, l)
}

// Query returns the lessons matching filter, sorted by ordering (DefaultOrdering when empty).
func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Lesson, error) {
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}
	return svc.repo.QueryLessons(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLesson(ctx, core.CleanString(id, true /* lower */))
}

// Update saves the validated changes of ul onto orig.
func (svc *Service) Update(ctx context.Context, orig Lesson, ul UpdateLesson) (Lesson, error) {
	l := ul.apply(orig)
	l.UpdatedAt = now()
	return svc.repo.UpdateLesson(ctx, l)
}

// Delete removes the lessons with the given IDs and returns how many were found.
func (svc *Service) Delete(ctx context.Context, ids ...string) (int, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		cleaned = append(cleaned, core.CleanString(id, true /* lower */))
	}
	return svc.repo.DeleteLessonsByID(ctx, cleaned...)
}

// Render formats the content of a lesson. The lesson ID is used as root element ID unless attrs sets one.
func (svc *Service) Render(ctx context.Context, id string, attrs content.Attrs) (content.Document, error) {
	l, err := svc.GetByID(ctx, id)
	if err != nil {
		return content.Document{}, err
	}
	if attrs.ID == "" {
		attrs.ID = "lesson-" + l.ID
	}
	return svc.renderer.Render(l.Content, attrs), nil
}

// Import upserts validated lessons in order and returns the number saved.
// It stops at the first failure.
func (svc *Service) Import(ctx context.Context, lessons []ImportLesson) (int, error) {
	var saved int
	for i, il := range lessons {
		tstamp := now()
		l := Lesson{
			ID:        il.ID,
			Title:     il.Title,
			Subject:   il.Subject,
			Level:     il.Level,
			Summary:   il.Summary,
			Content:   il.Content,
			Position:  il.Position,
			CreatedAt: tstamp,
			UpdatedAt: tstamp,
		}
		if _, err := svc.repo.UpdateOrCreateLesson(ctx, l); err != nil {
			return saved, errors.Wrapf(err, "importing lesson #%d %q", i+1, il.Title)
		}
		saved++
	}
	if svc.logger != nil {
		svc.logger.Info("lessons imported", core.Fields{"count": saved})
	}
	return saved, nil
}
