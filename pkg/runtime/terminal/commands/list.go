package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/commerce-tools/order-export/pkg/runtime/terminal/report"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	out     io.Writer
	cfgPath *string
}

// NewListCmd prints the orders matching the configured threshold and window,
// one labelled line per resolved field.
func NewListCmd(out io.Writer, cfgPath *string) *cobra.Command {
	lc := &ListCmd{out: out, cfgPath: cfgPath}
	return &cobra.Command{
		Use:   "list",
		Short: "List orders matching the configured export criteria",
		RunE:  lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	e, err := setup(*lc.cfgPath)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := e.logger.WithContext(cmd.Context())

	fields, rows, err := e.pipeline.ListOrders(ctx)
	if errors.Is(err, export.ErrDisabled) {
		fmt.Fprintln(lc.out, "Please enable the module in configuration first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(lc.out, "No orders found for the given criteria.")
		return nil
	}

	return report.NewReporter(lc.out).Handle(fields, rows)
}
