package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/herm409/activity-tracker-app-sub000/internal/daemon"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

func init() {
	rootCmd.AddCommand(streaksCmd)
}

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show current and longest streaks per metric",
	RunE:  runStreaks,
}

func runStreaks(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Tracker.Summary(userID, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Today (%s): %d points", sum.Date, sum.Points)
	switch {
	case sum.Deficit > 0:
		fmt.Printf(", %d below par\n\n", sum.Deficit)
	case sum.Deficit < 0:
		fmt.Printf(", %d above par\n\n", -sum.Deficit)
	default:
		fmt.Print(", on par\n\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tCURRENT\tLONGEST")
	for _, m := range domain.ScoredMetrics {
		fmt.Fprintf(w, "%s\t%d\t%d\n", m, sum.Streaks[m], sum.Longest[m])
	}
	return w.Flush()
}
