package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
	"github.com/smartjhs/smartjhs/core/lesson"
	logsvc "github.com/smartjhs/smartjhs/services/logger"
	"github.com/smartjhs/smartjhs/storage/database"
	inmemdb "github.com/smartjhs/smartjhs/storage/database/inmem"
	sqlxrepos "github.com/smartjhs/smartjhs/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator, conf.Content.MaxBytes)

	cli := commandLine{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		in:         os.Stdin,
		out:        os.Stdout,
	}
	cli.renderer = content.NewRenderer(content.NewTreebloodMath(conf.Content.MathMacros), logger)

	// set up DB & repos, only for the commands using them
	var lessonRepo lesson.Repository
	switch {
	case !needsDB(os.Args):
	case conf.Database.InMemory:
		lessonRepo = inmemdb.NewLessonRepository(inmemdb.Open())
	default:
		errAndDie(logger, database.CreateIfNotExist(conf))
		db, err := database.Open(conf)
		errAndDie(logger, err)
		defer func() { _ = db.Close() }()
		cli.db = db
		lessonRepo = sqlxrepos.NewLessonRepository(db)
	}
	cli.lessonSvc = lesson.NewService(lessonRepo, cli.renderer, logger)

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		if cli.db != nil {
			_ = cli.db.Close()
		}
		os.Exit(1)
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
