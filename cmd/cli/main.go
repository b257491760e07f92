package main

import (
	"fmt"
	"os"

	"github.com/de-tools/report-hub/pkg/runtime/terminal"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/services/report/cashflow"
	"github.com/de-tools/report-hub/pkg/services/report/customervisit"
	"github.com/de-tools/report-hub/pkg/services/report/servicesales"
	"github.com/de-tools/report-hub/pkg/services/report/stockout"
)

func main() {
	reports := report.NewRegistry()
	factories := map[string]report.ControllerFactory{
		"customer-visit": customervisit.ControllerFactory,
		"service-sales":  servicesales.ControllerFactory,
		"stock-out":      stockout.ControllerFactory,
		"cash-flow":      cashflow.ControllerFactory,
	}
	for name, factory := range factories {
		if err := reports.Register(name, factory); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cli := terminal.NewCLI(terminal.Options{
		Reports: reports,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
