package terminal

import (
	"io"
	"os"

	"github.com/de-tools/report-hub/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-hub/pkg/runtime/terminal/export"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reports  report.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Reports report.Registry
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reports:  opts.Reports,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Business report tool",
	}

	cmd.AddCommand(commands.NewListCmd(cli.reports))
	cmd.AddCommand(commands.NewRunCmd(cli.reports, cli.reporter))

	return cmd
}
