package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	out     io.Writer
	cfgPath *string
}

// NewExportCmd runs one export pipeline pass: select, render, deliver.
func NewExportCmd(out io.Writer, cfgPath *string) *cobra.Command {
	ec := &ExportCmd{out: out, cfgPath: cfgPath}
	return &cobra.Command{
		Use:   "export",
		Short: "Export matching orders to file and/or email",
		RunE:  ec.run,
	}
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	e, err := setup(*ec.cfgPath)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := e.logger.WithContext(cmd.Context())

	result := e.pipeline.Run(ctx)

	switch {
	case result.Skipped && !e.cfg.Enabled:
		fmt.Fprintln(ec.out, "Please enable the module in configuration first.")
	case result.Skipped:
		fmt.Fprintln(ec.out, "No orders found for the given criteria.")
	default:
		fmt.Fprintf(ec.out, "Exported %d orders", result.Records)
		if result.Delivery.FilePersisted {
			fmt.Fprintf(ec.out, " to %s", result.Artifact.Path)
		}
		if result.Delivery.EmailSent {
			fmt.Fprint(ec.out, " (report emailed)")
		}
		fmt.Fprintln(ec.out)
	}

	for _, note := range result.Degraded {
		fmt.Fprintf(ec.out, "warning: %s stage degraded: %v\n", note.Stage, note.Err)
	}
	return nil
}
