package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/lesson"
)

// decodeLessons reads a YAML list of lessons and validates every entry.
// Field errors are prefixed with the 1-based position of the lesson, e.g. "2.title".
func (cli *commandLine) decodeLessons(r io.Reader) ([]lesson.ImportLesson, error) {
	var lessons []lesson.ImportLesson
	if err := yaml.NewDecoder(r).Decode(&lessons); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decoding lessons")
	}

	var fldErrs []core.FieldError
	for i := range lessons {
		err := lessons[i].Validate(cli.validate)
		if err == nil {
			continue
		}
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, errors.Wrapf(err, "validating lesson #%d", i+1)
		}
		for _, fErr := range core.TranslateErrors(vErrs, cli.translator) {
			fErr.Field = fmt.Sprintf("%d.%s", i+1, fErr.Field)
			fldErrs = append(fldErrs, fErr)
		}
	}
	if fldErrs != nil {
		return nil, core.NewValidationError(nil, fldErrs...)
	}
	return lessons, nil
}

func (cli *commandLine) importLessons(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening lessons file")
	}
	defer func() { _ = f.Close() }()

	lessons, err := cli.decodeLessons(f)
	if err != nil {
		return err
	}

	saved, err := cli.lessonSvc.Import(context.Background(), lessons)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cli.out, "%d lesson(s) imported\n", saved)
	return err
}
