package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"hydrobr/ana"
	"hydrobr/index"
)

type CmdArgs struct {
	ANA   *ana.Cmd      `arg:"subcommand" help:"Process hydrometeorological series of the Brazilian National Water Agency"`
	Index *index.Config `arg:"subcommand" help:"Drop or recreate LARD indices"`
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// The following env variables are read:
	// 1. Dump
	//   - "ANA_BASE_URL" (optional)
	//
	// 2. Import
	//   - "LARD_CONN_STRING"
	//
	// A missing .env file is not an error, they can be set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println(err)
		return
	}

	args := CmdArgs{}
	parser := arg.MustParse(&args)

	switch {
	case args.ANA != nil:
		args.ANA.Execute(parser)
	case args.Index != nil:
		args.Index.Execute()
	default:
		fmt.Println("Error: passing a subcommand is required.")
		fmt.Println()
		parser.WriteHelp(os.Stdout)
	}
}
