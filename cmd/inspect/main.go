// Command inspect prints a game exported by the service as a board
// diagram. The document is read from the named file, or from stdin.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"go_engine/internal/engine/codec"
	"go_engine/internal/termview"
)

func main() {
	noColor := flag.Bool("no-color", false, "print without ANSI colors")
	flag.Parse()

	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	if *noColor {
		color.NoColor = true
	}

	data, err := readInput(flag.Arg(0))
	if err != nil {
		logger.Fatalw("cannot read document", "error", err)
	}
	g, err := codec.Decode(data)
	if err != nil {
		logger.Fatalw("cannot import document", "error", err)
	}
	if err := termview.Render(os.Stdout, g); err != nil {
		logger.Fatalw("cannot render board", "error", err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
