package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"finsk-kalender/internal/report"
)

// Exit code for a missing calendar file, distinct from general errors.
const exitNoCalendar = 2

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print a previously saved calendar in a readable format",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := report.DefaultFile
		if len(args) > 0 {
			path = args[0]
		}

		services, err := report.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: %s not found. Run 'kalender fetch' first.\n", path)
			os.Exit(exitNoCalendar)
		}
		if err != nil {
			return err
		}

		report.Print(os.Stdout, services)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
