package echoapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartjhs/smartjhs/core/content"
	"github.com/smartjhs/smartjhs/core/lesson"
	"github.com/smartjhs/smartjhs/tests"
)

const levelText = "level must be one of [primary jhs shs]"

func createLessons(t *testing.T, app testApp) (lesson.Lesson, lesson.Lesson, lesson.Lesson) {
	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	l1 := testutil.CreateLesson(t, app.repo, "Fractions", "Mathematics", lesson.LevelJHS, "Half is $x$", 2, tstamp)
	l2 := testutil.CreateLesson(t, app.repo, "Algebra", "Mathematics", lesson.LevelSHS, "", 1, tstamp.Add(time.Second))
	l3 := testutil.CreateLesson(t, app.repo, "Photosynthesis", "Science", lesson.LevelJHS, "**Light**", 1, tstamp.Add(2*time.Second))
	return l1, l2, l3
}

func TestLessonApi_create(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{
			name:     "empty",
			method:   http.MethodPost,
			path:     "/v1/lessons",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"title":"this field is required","subject":"this field is required","level":"this field is required"}`),
		},
		{
			name:     "blank title & bad level",
			method:   http.MethodPost,
			path:     "/v1/lessons",
			body:     []byte(`{"title":"   ","subject":"Science","level":"college"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(fmt.Sprintf(`{"title":"this field is required","level":%q}`, levelText)),
		},
		{
			name:     "negative position",
			method:   http.MethodPost,
			path:     "/v1/lessons",
			body:     []byte(`{"title":"Cells","subject":"Science","level":"jhs","position":-1}`),
			wantCode: http.StatusBadRequest,
		},
	})

	t.Run("valid", func(t *testing.T) {
		body := []byte(`{"title":" Cells ","subject":"Science","level":"JHS","summary":"Units of life","content":"**cells**","position":3}`)
		req, rec := newRequest(http.MethodPost, "/v1/lessons", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got lesson.Lesson
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Cells", got.Title)
		assert.Equal(t, "Science", got.Subject)
		assert.Equal(t, lesson.LevelJHS, got.Level)
		assert.Equal(t, "Units of life", got.Summary)
		assert.Equal(t, "**cells**", got.Content)
		assert.Equal(t, 3, got.Position)
		assert.False(t, got.CreatedAt.IsZero())

		saved, err := app.repo.GetLesson(context.Background(), got.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Title, saved.Title)
	})
}

func TestLessonApi_query(t *testing.T) {
	app := setup(t)
	l1, l2, l3 := createLessons(t, app)

	app.run(t, []httpTest{
		{name: "default ordering", path: "/v1/lessons", wantCode: http.StatusOK, wantData: marchallList(t, l2, l3, l1)},
		{name: "ordering by title desc", path: "/v1/lessons?ordering=-title", wantCode: http.StatusOK, wantData: marchallList(t, l3, l1, l2)},
		{name: "ordering by created_at", path: "/v1/lessons?ordering=created_at", wantCode: http.StatusOK, wantData: marchallList(t, l1, l2, l3)},
		{name: "invalid ordering", path: "/v1/lessons?ordering=content", wantCode: http.StatusBadRequest, wantData: []byte(`{"ordering":"ordering fields must be among [title subject level position created_at updated_at]"}`)},
		{name: "by subject", path: "/v1/lessons?subject=mathematics&ordering=title", wantCode: http.StatusOK, wantData: marchallList(t, l2, l1)},
		{name: "by level", path: "/v1/lessons?level=jhs&ordering=title", wantCode: http.StatusOK, wantData: marchallList(t, l1, l3)},
		{name: "search", path: "/v1/lessons?search=SYNTH", wantCode: http.StatusOK, wantData: marchallList(t, l3)},
		{name: "no match", path: "/v1/lessons?search=history", wantCode: http.StatusOK, wantData: marchallList(t)},
	})
}

func TestLessonApi_retrieve(t *testing.T) {
	app := setup(t)
	l1, _, _ := createLessons(t, app)

	app.run(t, []httpTest{
		{name: "ok", path: "/v1/lessons/" + l1.ID, wantCode: http.StatusOK, wantData: marchallObj(t, l1)},
		{name: "trailing slash", path: "/v1/lessons/" + l1.ID + "/", wantCode: http.StatusOK, wantData: marchallObj(t, l1)},
		{name: "unknown id", path: "/v1/lessons/5f0b7a9e-36c4-4c4e-9a0c-2f1e2f7d9b10", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "invalid id", path: "/v1/lessons/lol", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	})
}

func TestLessonApi_update(t *testing.T) {
	app := setup(t)
	l1, _, _ := createLessons(t, app)
	path := "/v1/lessons/" + l1.ID

	app.run(t, []httpTest{
		{name: "bad level", method: http.MethodPut, path: path, body: []byte(`{"level":"college"}`), wantCode: http.StatusBadRequest, wantData: []byte(fmt.Sprintf(`{"level":%q}`, levelText))},
		{name: "unknown id", method: http.MethodPut, path: "/v1/lessons/lol", body: []byte(`{"title":"x"}`), wantCode: http.StatusNotFound},
	})

	t.Run("partial", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, path, []byte(`{"title":"Fractions II","content":"","position":0}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got lesson.Lesson
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, l1.ID, got.ID)
		assert.Equal(t, "Fractions II", got.Title)
		assert.Equal(t, l1.Subject, got.Subject)
		assert.Equal(t, l1.Level, got.Level)
		assert.Equal(t, "", got.Content)
		assert.Equal(t, 0, got.Position)
		assert.True(t, got.CreatedAt.Equal(l1.CreatedAt))
		assert.False(t, got.UpdatedAt.Before(l1.UpdatedAt))
	})
}

func TestLessonApi_destroy(t *testing.T) {
	app := setup(t)
	l1, l2, l3 := createLessons(t, app)

	app.run(t, []httpTest{
		{name: "one", method: http.MethodDelete, path: "/v1/lessons/" + l1.ID, wantCode: http.StatusNoContent},
		{name: "deleted", path: "/v1/lessons/" + l1.ID, wantCode: http.StatusNotFound},
		{name: "multiple without ids", method: http.MethodDelete, path: "/v1/lessons", wantCode: http.StatusNoContent},
		{name: "after noop", path: "/v1/lessons", wantCode: http.StatusOK, wantData: marchallList(t, l2, l3)},
		{
			name:     "multiple",
			method:   http.MethodDelete,
			path:     fmt.Sprintf("/v1/lessons?id=%s&id=%s&id=lol", l2.ID, l3.ID),
			wantCode: http.StatusNoContent,
		},
		{name: "all deleted", path: "/v1/lessons", wantCode: http.StatusOK, wantData: marchallList(t)},
	})
}

func TestLessonApi_rendered(t *testing.T) {
	app := setup(t)
	l1, _, l3 := createLessons(t, app)

	app.run(t, []httpTest{
		{
			name:     "json",
			path:     "/v1/lessons/" + l1.ID + "/rendered",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, app.renderer.Render(l1.Content, content.Attrs{ID: "lesson-" + l1.ID})),
		},
		{
			name:     "custom attrs",
			path:     "/v1/lessons/" + l1.ID + "/rendered?id=main&class_name=dark",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, app.renderer.Render(l1.Content, content.Attrs{ID: "main", ClassName: "dark"})),
		},
		{
			name:     "html",
			path:     "/v1/lessons/" + l3.ID + "/rendered?format=HTML&id=main",
			wantCode: http.StatusOK,
			wantData: []byte(`{"html":"<div class=\"markdown-content\" id=\"main\"><p><strong>Light</strong></p></div>"}`),
		},
		{
			name:     "invalid format",
			path:     "/v1/lessons/" + l3.ID + "/rendered?format=pdf",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"format":"format must be one of [json html]"}`),
		},
		{name: "unknown id", path: "/v1/lessons/lol/rendered", wantCode: http.StatusNotFound},
	})
}
