package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/lesson"
)

const (
	lessonColumns = "id, title, subject, level, summary, content, position, created_at, updated_at"
	lessonValues  = ":id, :title, :subject, :level, :summary, :content, :position, :created_at, :updated_at"
	lessonUpdates = "title = :title, subject = :subject, level = :level, summary = :summary, " +
		"content = :content, position = :position, updated_at = :updated_at"
)

// sortable columns by ordering field
var orderColumns = map[string]string{
	"title":      "title",
	"subject":    "subject",
	"level":      "level",
	"position":   "position",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sqlx.DB) *lessonRepository {
	return &lessonRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to lesson.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return lesson.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo lessonRepository) insert(ctx context.Context, query string, l lesson.Lesson) (lesson.Lesson, error) {
	stmt, err := repo.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "preparing statement")
	}
	defer func() { _ = stmt.Close() }()

	var saved lesson.Lesson
	if err = stmt.GetContext(ctx, &saved, l); err != nil {
		return lesson.Lesson{}, trapNoRowsErr(err, "saving lesson")
	}
	return saved, nil
}

func (repo lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	q := "INSERT INTO lesson (" + lessonColumns + ") VALUES (" + lessonValues + ") RETURNING " + lessonColumns
	saved, err := repo.insert(ctx, q, l)
	return saved, errors.Wrap(err, "inserting lesson")
}

func (repo lessonRepository) QueryLessons(ctx context.Context, filter *lesson.QueryFilter, ordering []core.DBOrdering) ([]lesson.Lesson, error) {
	q, args := buildLessonQuery(filter, ordering)
	lessons := make([]lesson.Lesson, 0)
	if err := repo.db.SelectContext(ctx, &lessons, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	return lessons, nil
}

func (repo lessonRepository) GetLesson(ctx context.Context, id string) (lesson.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	var l lesson.Lesson
	err := repo.db.GetContext(ctx, &l, repo.db.Rebind("SELECT "+lessonColumns+" FROM lesson WHERE id = ?"), id)
	if err != nil {
		return lesson.Lesson{}, trapNoRowsErr(err, "finding lesson by ID")
	}
	return l, nil
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	if _, err := uuid.Parse(l.ID); err != nil {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	q := "UPDATE lesson SET " + lessonUpdates + " WHERE id = :id RETURNING " + lessonColumns
	return repo.insert(ctx, q, l)
}

func (repo lessonRepository) UpdateOrCreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	if l.ID == "" {
		return repo.CreateLesson(ctx, l)
	}
	q := "INSERT INTO lesson (" + lessonColumns + ") VALUES (" + lessonValues + ") " +
		"ON CONFLICT (id) DO UPDATE SET " + strings.ReplaceAll(lessonUpdates, ":", "EXCLUDED.") +
		" RETURNING " + lessonColumns
	saved, err := repo.insert(ctx, q, l)
	return saved, errors.Wrap(err, "upserting lesson")
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, ids ...string) (int, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	q, args, err := sqlx.In("DELETE FROM lesson WHERE id IN (?)", valid)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting lessons")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting deleted lessons")
	}
	return int(cnt), nil
}

// buildLessonQuery returns the lessons SELECT for filter and ordering, with `?` bind vars.
// Unknown ordering fields are ignored.
func buildLessonQuery(filter *lesson.QueryFilter, ordering []core.DBOrdering) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		// lessons with Title or Summary matching the search keyword
		if filter.Search != "" {
			val := "%" + escapeLike(filter.Search) + "%"
			conds = append(conds, "(title ILIKE ? OR summary ILIKE ?)")
			args = append(args, val, val)
		}
		if filter.Subject != "" {
			conds = append(conds, "LOWER(subject) = LOWER(?)")
			args = append(args, filter.Subject)
		}
		if filter.Level != "" {
			conds = append(conds, "level = ?")
			args = append(args, filter.Level)
		}
	}

	var b strings.Builder
	b.WriteString("SELECT " + lessonColumns + " FROM lesson")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	orderList := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		if col, ok := orderColumns[ord.Field]; ok {
			orderList = append(orderList, core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
		}
	}
	orderList = append(orderList, "id ASC")
	b.WriteString(" ORDER BY " + strings.Join(orderList, ", "))

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
