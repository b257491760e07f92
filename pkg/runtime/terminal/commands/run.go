package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/runtime/terminal/export"
	"github.com/de-tools/report-hub/pkg/services/config"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/spf13/cobra"
)

type RunCmd struct {
	profilePath string
	profileName string
	from        string
	to          string
	search      string
	sortKey     string
	direction   string
	page        int
	pageSize    int
	filters     []string

	reports  report.Registry
	reporter *export.Reporter
}

func NewRunCmd(reports report.Registry, reporter *export.Reporter) *cobra.Command {
	rc := &RunCmd{reports: reports, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run <report>",
		Short: "Run a report and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile-path", "", "Path to the connection profiles file")
	cmd.Flags().StringVar(&rc.profileName, "profile", "", "Name of the connection profile to use")
	cmd.Flags().StringVar(&rc.from, "from", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.to, "to", "", "Window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.search, "search", "", "Search text applied across the report's text fields")
	cmd.Flags().StringVar(&rc.sortKey, "sort", "", "Sort key")
	cmd.Flags().StringVar(&rc.direction, "dir", "asc", "Sort direction (asc or desc)")
	cmd.Flags().IntVar(&rc.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&rc.pageSize, "page-size", 0, "Page size, 0 for everything")
	cmd.Flags().StringArrayVar(&rc.filters, "filter", nil, "Filter as key=value, repeatable")

	_ = cmd.MarkFlagRequired("profile-path")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	profiles, err := config.NewRegistry(rc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %q: %w", rc.profilePath, err)
	}

	profile, err := profiles.GetProfile(ctx, rc.profileName)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", rc.profileName, err)
	}

	name := args[0]
	ctrl, err := rc.reports.Create(name, report.Dependencies{
		Fetcher: client.New(profile),
		Profile: profile,
	})
	if err != nil {
		return fmt.Errorf("failed to create report %q: %w", name, err)
	}

	query, err := rc.buildQuery()
	if err != nil {
		return err
	}

	page, err := ctrl.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to run report %q: %w", name, err)
	}

	return rc.reporter.Handle(page)
}

func (rc *RunCmd) buildQuery() (domain.ReportQuery, error) {
	var q domain.ReportQuery
	var err error

	if rc.from != "" {
		if q.From, err = time.Parse("2006-01-02", rc.from); err != nil {
			return q, fmt.Errorf("invalid --from date %q: %w", rc.from, err)
		}
	}
	if rc.to != "" {
		if q.To, err = time.Parse("2006-01-02", rc.to); err != nil {
			return q, fmt.Errorf("invalid --to date %q: %w", rc.to, err)
		}
	}

	q.Search = rc.search
	q.SortKey = rc.sortKey
	q.Direction = domain.SortAsc
	if rc.direction == string(domain.SortDesc) {
		q.Direction = domain.SortDesc
	}
	q.Page = rc.page
	q.PageSize = rc.pageSize

	q.Filters = make(map[string]string, len(rc.filters))
	for _, f := range rc.filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return q, fmt.Errorf("invalid --filter %q, expected key=value", f)
		}
		q.Filters[key] = value
	}

	return q, nil
}
