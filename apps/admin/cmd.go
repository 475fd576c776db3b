package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
	"github.com/smartjhs/smartjhs/core/lesson"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	db         *sqlx.DB // nil when the lessons are kept in memory
	lessonSvc  *lesson.Service
	renderer   *content.Renderer
	validate   *validator.Validate
	translator ut.Translator
	in         io.Reader
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  render [-file PATH] [-format json|html] [-id ID] [-class CLASS] - render lesson content from a file or stdin")
	fmt.Fprintln(cli.out, "  import -file lessons.yaml - create or update the lessons listed in a YAML file")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run database migrations (up, down, status, version, ...)")
}

// needsDB reports whether the command of args works on the lesson store.
func needsDB(args []string) bool {
	return len(args) > 1 && (args[1] == "import" || args[1] == "migrate")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	renderCmd := flag.NewFlagSet("render", flag.ContinueOnError)
	renderCmd.SetOutput(cli.out)
	renderFile := renderCmd.String("file", "", "The content file to render. Reads stdin when empty.")
	renderFormat := renderCmd.String("format", formatJSON, "The output format: json or html.")
	renderID := renderCmd.String("id", "", "The ID of the root element.")
	renderClass := renderCmd.String("class", "", "Extra class names of the root element.")

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importCmd.SetOutput(cli.out)
	importFile := importCmd.String("file", "", "The YAML file listing the lessons.")

	switch args[1] {
	case "render":
		if err := renderCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		src, err := cli.openSource(*renderFile)
		if err != nil {
			if err == errHelp {
				renderCmd.Usage()
			}
			return err
		}
		defer func() { _ = src.Close() }()
		attrs := content.Attrs{ID: core.CleanString(*renderID), ClassName: core.CleanString(*renderClass)}
		return cli.render(src, core.CleanString(*renderFormat, true /* lower */), attrs)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importLessons(*importFile)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// openSource opens the file at path, or stdin when path is empty.
// An interactive stdin is refused: content has to be piped in.
func (cli *commandLine) openSource(path string) (io.ReadCloser, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening content file")
		}
		return f, nil
	}
	if f, ok := cli.in.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
		return nil, errHelp
	}
	return io.NopCloser(cli.in), nil
}
