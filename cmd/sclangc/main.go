package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/g3rrit/muon-lang/pkg/parsec"
	"github.com/g3rrit/muon-lang/pkg/sclang"
)

var Description = strings.ReplaceAll(`
The SC-Lang Compiler takes a single source file written in SC-Lang, a small curly-brace
systems language, and translates it into an equivalent lower-level curly-brace target
language by way of a parser-combinator front end and a fixed macro prelude.
`, "\n", " ")

var SclangCompiler = cli.New(Description).
	WithArg(cli.NewArg("input", "The source (.sc) file to be translated")).
	WithArg(cli.NewArg("output", "The translated output file, defaults to stdout").AsOptional()).
	WithOption(cli.NewOption("prelude", "Path to a macro prelude file to emit before the first declaration").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	input, err := os.Open(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	output := os.Stdout
	if len(args) > 1 {
		file, err := os.Create(args[1])
		if err != nil {
			fmt.Printf("ERROR: Unable to open output file: %s\n", err)
			return -1
		}
		defer file.Close()
		output = file
	}

	prelude := defaultPrelude
	if path, given := options["prelude"]; given {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("ERROR: Unable to open prelude file: %s\n", err)
			return -1
		}
		prelude = string(content)
	}

	// Instantiate a parser for the SC-Lang source
	parser := sclang.NewParser(input)
	sink := parsec.NewSink(output)
	// Drives the whole pipeline: parses one declaration at a time and emits
	// its translation, until end-of-input or a fatal error.
	if err := parser.Translate(sink, prelude); err != nil {
		fmt.Printf("ERROR: Unable to complete 'translate' pass: %s\n", err)
		return -1
	}

	return 0
}

func main() { os.Exit(SclangCompiler.Run(os.Args, os.Stdout)) }
