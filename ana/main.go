package ana

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"hydrobr/ana/dump"
	"hydrobr/ana/filter"
	port "hydrobr/ana/import"
	"hydrobr/ana/monthly"
	"hydrobr/ana/report"
)

type Cmd struct {
	Dump    *dump.Config    `arg:"subcommand" help:"Dump station series from the ANA web service to CSV"`
	Import  *port.Config    `arg:"subcommand" help:"Import the merged station series into LARD"`
	Filter  *filter.Config  `arg:"subcommand" help:"Qualify stations and export them as fixed-width files"`
	Monthly *monthly.Config `arg:"subcommand" help:"Aggregate daily series into monthly values"`
	Report  *report.Config  `arg:"subcommand" help:"Write availability and duration curve reports"`
}

func (c *Cmd) Execute(parser *arg.Parser) {
	switch {
	case c.Dump != nil:
		c.Dump.Execute()
	case c.Import != nil:
		c.Import.Execute()
	case c.Filter != nil:
		c.Filter.Execute()
	case c.Monthly != nil:
		c.Monthly.Execute()
	case c.Report != nil:
		c.Report.Execute()
	default:
		fmt.Println("Error: passing a subcommand is required.")
		fmt.Println()
		parser.WriteHelpForSubcommand(os.Stdout, "ana")
	}
}
