package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/lesson"
)

type lessonRepository struct {
	db *lessonTable
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) query() []lesson.Lesson {
	lessons := make([]lesson.Lesson, 0, len(repo.db.table))
	for _, l := range repo.db.table {
		lessons = append(lessons, *l)
	}
	return lessons
}

func (repo *lessonRepository) create(l lesson.Lesson) lesson.Lesson {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	repo.db.table[l.ID] = &l
	return l
}

func (repo *lessonRepository) update(l lesson.Lesson) (lesson.Lesson, error) {
	orig, ok := repo.db.table[l.ID]
	if !ok {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	l.CreatedAt = orig.CreatedAt
	repo.db.table[l.ID] = &l
	return l, nil
}

func (repo *lessonRepository) CreateLesson(_ context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	return repo.create(l), nil
}

func (repo *lessonRepository) QueryLessons(_ context.Context, filter *lesson.QueryFilter, ordering []core.DBOrdering) ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]lesson.Lesson, 0, len(repo.db.table))
	for _, l := range repo.query() {
		if matches(l, filter) {
			lessons = append(lessons, l)
		}
	}
	sortLessons(lessons, ordering)
	return lessons, nil
}

func (repo *lessonRepository) GetLesson(_ context.Context, id string) (lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.table[id]; ok {
		return *l, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	return repo.update(l)
}

func (repo *lessonRepository) UpdateOrCreateLesson(_ context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[l.ID]; ok {
		return repo.update(l)
	}
	return repo.create(l), nil
}

func (repo *lessonRepository) DeleteLessonsByID(_ context.Context, ids ...string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func matches(l lesson.Lesson, filter *lesson.QueryFilter) bool {
	if filter == nil {
		return true
	}
	// lessons with search keyword matching Title or Summary ?
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(l.Title), search) && !strings.Contains(strings.ToLower(l.Summary), search) {
			return false
		}
	}
	if filter.Subject != "" && !strings.EqualFold(l.Subject, filter.Subject) {
		return false
	}
	if filter.Level != "" && l.Level != filter.Level {
		return false
	}
	return true
}

// sortLessons sorts by each ordering field in turn, then by ID so results are stable.
func sortLessons(lessons []lesson.Lesson, ordering []core.DBOrdering) {
	sort.SliceStable(lessons, func(i, j int) bool {
		for _, ord := range ordering {
			c := compareField(lessons[i], lessons[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return lessons[i].ID < lessons[j].ID
	})
}

func compareField(a, b lesson.Lesson, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "subject":
		return strings.Compare(a.Subject, b.Subject)
	case "level":
		return strings.Compare(a.Level, b.Level)
	case "position":
		return a.Position - b.Position
	case "created_at":
		return compareTime(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	case "updated_at":
		return compareTime(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	}
	return 0
}

func compareTime(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
