package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	reports report.Registry
}

func NewListCmd(reports report.Registry) *cobra.Command {
	lc := &ListCmd{reports: reports}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available reports",
		RunE:  lc.run,
	}
	return cmd
}

func (lc *ListCmd) run(cmd *cobra.Command, args []string) error {
	names := lc.reports.ListReports()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available reports:\n%s\n", strings.Join(names, "\n"))
	return nil
}
