package terminal

import (
	"io"
	"os"

	"github.com/commerce-tools/order-export/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order-export",
		Short: "Order export tool",
	}

	var cfgPath string
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "order-export.yaml",
		"Path to the export configuration file")

	cmd.AddCommand(commands.NewListCmd(out, &cfgPath))
	cmd.AddCommand(commands.NewExportCmd(out, &cfgPath))
	cmd.AddCommand(commands.NewCleanupCmd(out, &cfgPath))

	return cmd
}
