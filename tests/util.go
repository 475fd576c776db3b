package testutil

import (
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/lesson"
	logsvc "github.com/smartjhs/smartjhs/services/logger"
)

func CreateLesson(
	t *testing.T,
	repo lesson.Repository,
	title, subject, level, content string,
	position int,
	createdAt ...time.Time,
) lesson.Lesson {
	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	l := lesson.Lesson{
		Title:     title,
		Subject:   subject,
		Level:     level,
		Content:   content,
		Position:  position,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	l, err := repo.CreateLesson(context.Background(), l)
	if err != nil {
		t.Fatalf("createLesson() failed: %v", err)
	}
	return l
}

// NewConfig returns the config of the TEST env, without reading the environment.
func NewConfig() *core.Config {
	conf := &core.Config{
		AppName:  "SmartJHS",
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
	}
	conf.Server.BodyLimit = "2M"
	conf.Server.DisableReqLogs = true
	conf.Database.InMemory = true
	conf.Content.MaxBytes = 1024
	conf.Content.Sanitize = true
	return conf
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// NewLogger returns a disabled rollbar logger printing to the test log.
func NewLogger(t *testing.T) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(testWriter{t: t}, "TEST : ", log.Lshortfile), NewConfig())
	logger.Enable(false)
	return logger
}
