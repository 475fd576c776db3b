// Package inmemdb is a process-local lesson store for development and tests.
package inmemdb

import (
	"sync"

	"github.com/smartjhs/smartjhs/core/lesson"
)

type (
	DB struct {
		lesson *lessonTable
	}

	lessonTable struct {
		sync.RWMutex
		table map[string]*lesson.Lesson
	}
)

func Open() *DB {
	return &DB{
		lesson: &lessonTable{table: make(map[string]*lesson.Lesson)},
	}
}

// Reset drops every stored row.
func (db *DB) Reset() {
	db.lesson.Lock()
	defer db.lesson.Unlock()
	db.lesson.table = make(map[string]*lesson.Lesson)
}
