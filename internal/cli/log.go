package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/herm409/activity-tracker-app-sub000/internal/daemon"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to log (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(logCmd)
}

var logDate string

var logCmd = &cobra.Command{
	Use:   "log <metric> [count]",
	Short: "Log activity for today",
	Long: `Log activity by bumping a metric's count for the day.

Metrics: exposures, follow_ups, presentations, three_ways, enrolls.

Examples:
  partrack log exposures
  partrack log enrolls 2
  partrack log follow_ups 3 --date 2026-08-15`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	metric, err := domain.ParseMetric(args[0])
	if err != nil {
		return err
	}

	count := 1
	if len(args) == 2 {
		count, err = strconv.Atoi(args[1])
		if err != nil || count == 0 {
			return fmt.Errorf("invalid count %q", args[1])
		}
	}

	date := time.Now()
	if logDate != "" {
		date, err = time.Parse("2006-01-02", logDate)
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", logDate)
		}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.Tracker.AddActivity(userID, date, metric, count)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d %s on %s (now %d)\n",
		count, metric, date.Format("2006-01-02"), rec.Count(metric))
	return nil
}
