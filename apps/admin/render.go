package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

func (cli *commandLine) render(src io.Reader, format string, attrs content.Attrs) error {
	if format != formatJSON && format != formatHTML {
		return core.NewValidationError(nil, core.FieldError{Field: "format", Error: "format must be one of [json html]"})
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrap(err, "reading content")
	}
	source := string(data)
	if err = cli.validate.Var(source, "contentsize"); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			fldErrs := core.TranslateErrors(vErrs, cli.translator)
			for i := range fldErrs {
				fldErrs[i].Field = "content"
			}
			return core.NewValidationError(nil, fldErrs...)
		}
		return errors.Wrap(err, "validating content")
	}

	doc := cli.renderer.Render(source, attrs)
	if format == formatHTML {
		if err = content.WriteHTML(cli.out, doc); err != nil {
			return errors.Wrap(err, "writing html")
		}
		_, err = fmt.Fprintln(cli.out)
		return err
	}

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "writing json")
}
