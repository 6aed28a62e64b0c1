package commands

import (
	"fmt"
	"io"

	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/spf13/cobra"
)

type CleanupCmd struct {
	out     io.Writer
	cfgPath *string
}

// NewCleanupCmd trims the export directory down to the configured retention
// count, newest files kept.
func NewCleanupCmd(out io.Writer, cfgPath *string) *cobra.Command {
	cc := &CleanupCmd{out: out, cfgPath: cfgPath}
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old export files beyond the retention count",
		RunE:  cc.run,
	}
}

func (cc *CleanupCmd) run(cmd *cobra.Command, _ []string) error {
	e, err := setup(*cc.cfgPath)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := e.logger.WithContext(cmd.Context())

	deleted, err := export.Cleanup(ctx, e.cfg.ExportDir, e.cfg.RetentionCount)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if len(deleted) == 0 {
		fmt.Fprintln(cc.out, "Nothing to delete.")
		return nil
	}
	for _, name := range deleted {
		fmt.Fprintf(cc.out, "Deleted %s\n", name)
	}
	return nil
}
