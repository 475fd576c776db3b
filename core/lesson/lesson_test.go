package lesson_test

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
	"github.com/smartjhs/smartjhs/core/lesson"
	inmemdb "github.com/smartjhs/smartjhs/storage/database/inmem"
)

const maxContentBytes = 64

func newValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator, maxContentBytes)
	return validate
}

func setup() (*lesson.Service, lesson.Repository) {
	repo := inmemdb.NewLessonRepository(inmemdb.Open())
	svc := lesson.NewService(repo, content.NewRenderer(nil, nil), nil)
	return svc, repo
}

func fieldsOf(t *testing.T, err error) []string {
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs), "error type = %T", err)
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestNewLesson_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name       string
		data       lesson.NewLesson
		wantFields []string
	}{
		{name: "valid", data: lesson.NewLesson{Title: " Sets ", Subject: "Maths", Level: "JHS", Content: "- a"}},
		{name: "missing fields", data: lesson.NewLesson{}, wantFields: []string{"title", "subject", "level"}},
		{name: "blank title", data: lesson.NewLesson{Title: "   ", Subject: "Maths", Level: "jhs"}, wantFields: []string{"title"}},
		{name: "unknown level", data: lesson.NewLesson{Title: "Sets", Subject: "Maths", Level: "uni"}, wantFields: []string{"level"}},
		{
			name:       "content too large",
			data:       lesson.NewLesson{Title: "Sets", Subject: "Maths", Level: "jhs", Content: strings.Repeat("x", maxContentBytes+1)},
			wantFields: []string{"content"},
		},
		{name: "negative position", data: lesson.NewLesson{Title: "Sets", Subject: "Maths", Level: "jhs", Position: -1}, wantFields: []string{"position"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, "Sets", tt.data.Title)
				assert.Equal(t, lesson.LevelJHS, tt.data.Level)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestImportLesson_Validate(t *testing.T) {
	validate := newValidator()

	il := lesson.ImportLesson{ID: "not-a-uuid", NewLesson: lesson.NewLesson{Title: "Sets", Subject: "Maths", Level: "jhs"}}
	assert.Equal(t, []string{"id"}, fieldsOf(t, il.Validate(validate)))

	il.ID = " 7D6C3C32-5D5A-4F8E-9D3E-3A4B3F0F0B55 "
	require.NoError(t, il.Validate(validate))
	assert.Equal(t, "7d6c3c32-5d5a-4f8e-9d3e-3a4b3f0f0b55", il.ID)
}

func TestUpdateLesson_Validate(t *testing.T) {
	validate := newValidator()
	orig := lesson.Lesson{Title: "Sets", Subject: "Maths", Level: lesson.LevelJHS}

	ul := lesson.UpdateLesson{Level: "SHS"}
	require.NoError(t, ul.Validate(validate, orig))
	assert.Equal(t, "Sets", ul.Title)
	assert.Equal(t, "Maths", ul.Subject)
	assert.Equal(t, lesson.LevelSHS, ul.Level)

	ul = lesson.UpdateLesson{Level: "lol"}
	assert.Equal(t, []string{"level"}, fieldsOf(t, ul.Validate(validate, orig)))

	big := strings.Repeat("x", maxContentBytes+1)
	ul = lesson.UpdateLesson{Content: &big}
	assert.Equal(t, []string{"content"}, fieldsOf(t, ul.Validate(validate, orig)))
}

func TestValidateOrdering(t *testing.T) {
	validate := newValidator()

	assert.NoError(t, lesson.ValidateOrdering(validate, core.ParseOrdering("title,-created_at,position")))
	assert.NoError(t, lesson.ValidateOrdering(validate, nil))

	err := lesson.ValidateOrdering(validate, core.ParseOrdering("title,password"))
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "ordering", vErr.Fields[0].Field)
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	l, err := svc.Create(ctx, lesson.NewLesson{Title: "Sets", Subject: "Maths", Level: "jhs", Content: "**Sets**\n\n- A\n- B"})
	require.NoError(t, err)
	assert.False(t, l.CreatedAt.IsZero())
	assert.Equal(t, l.CreatedAt, l.UpdatedAt)

	got, err := svc.GetByID(ctx, strings.ToUpper(l.ID))
	require.NoError(t, err)
	assert.Equal(t, l, got)

	t.Run("update", func(t *testing.T) {
		pos := 4
		upd, err := svc.Update(ctx, got, lesson.UpdateLesson{Title: "Sets 2", Subject: got.Subject, Level: got.Level, Position: &pos})
		require.NoError(t, err)
		assert.Equal(t, "Sets 2", upd.Title)
		assert.Equal(t, 4, upd.Position)
		assert.Equal(t, got.Content, upd.Content)
		assert.Equal(t, got.CreatedAt, upd.CreatedAt)
		assert.False(t, upd.UpdatedAt.Before(got.UpdatedAt))
	})

	t.Run("render", func(t *testing.T) {
		doc, err := svc.Render(ctx, l.ID, content.Attrs{ClassName: "lesson"})
		require.NoError(t, err)
		assert.Equal(t, "lesson-"+l.ID, doc.ID)
		assert.Equal(t, "lesson", doc.ClassName)
		require.Len(t, doc.Nodes, 2)
		assert.Equal(t, content.NodeList, doc.Nodes[1].Kind)

		doc, err = svc.Render(ctx, l.ID, content.Attrs{ID: "custom"})
		require.NoError(t, err)
		assert.Equal(t, "custom", doc.ID)

		_, err = svc.Render(ctx, "unknown", content.Attrs{})
		assert.Equal(t, lesson.ErrNotFound, errors.Cause(err))
	})

	t.Run("import", func(t *testing.T) {
		n, err := svc.Import(ctx, []lesson.ImportLesson{
			{ID: l.ID, NewLesson: lesson.NewLesson{Title: "Sets (imported)", Subject: "Maths", Level: "jhs"}},
			{NewLesson: lesson.NewLesson{Title: "Angles", Subject: "Maths", Level: "jhs", Position: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		lessons, err := svc.Query(ctx, &lesson.QueryFilter{Subject: "maths"}, nil)
		require.NoError(t, err)
		require.Len(t, lessons, 2)
		assert.Equal(t, "Sets (imported)", lessons[0].Title)
		assert.Equal(t, l.CreatedAt, lessons[0].CreatedAt)
		assert.Equal(t, "Angles", lessons[1].Title)
	})

	t.Run("delete", func(t *testing.T) {
		n, err := svc.Delete(ctx, " "+strings.ToUpper(l.ID)+" ", "unknown")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = svc.GetByID(ctx, l.ID)
		assert.Equal(t, lesson.ErrNotFound, err)
	})
}
