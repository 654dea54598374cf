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
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Reference day (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Show monthly progress instead (YYYY-MM)")
	rootCmd.AddCommand(reportCmd)
}

var (
	reportDate  string
	reportMonth string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the weekly activity report",
	Long: `Show the current week's totals, points, and par standing, compared
against the previous week. Use --month for monthly goal progress.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if reportMonth != "" {
		key, err := domain.ParseMonthKey(reportMonth)
		if err != nil {
			return err
		}
		return printMonthReport(d, key)
	}

	ref := time.Now()
	if reportDate != "" {
		ref, err = time.Parse("2006-01-02", reportDate)
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", reportDate)
		}
	}
	return printWeekReport(d, ref)
}

func printWeekReport(d *daemon.Daemon, ref time.Time) error {
	report, err := d.Tracker.ReportWeek(userID, ref)
	if err != nil {
		return err
	}

	fmt.Printf("Week %s to %s\n\n", report.WeekStart, report.WeekEnd)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tTHIS WEEK\tLAST WEEK")
	for _, m := range domain.ScoredMetrics {
		fmt.Fprintf(w, "%s\t%d\t%d\n", m, report.Totals[m], report.PrevTotals[m])
	}
	fmt.Fprintf(w, "points\t%d\t%d\n", report.Points, report.PrevPoints)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nPar: %d points of %d target", report.Par.Points, report.Par.Target)
	switch {
	case report.Par.Deficit > 0:
		fmt.Printf(" (%d behind)\n", report.Par.Deficit)
	case report.Par.Deficit < 0:
		fmt.Printf(" (%d ahead)\n", -report.Par.Deficit)
	default:
		fmt.Println(" (on par)")
	}

	if len(report.MissedDays) > 0 {
		fmt.Printf("Missed days: %v\n", report.MissedDays)
	}
	return nil
}

func printMonthReport(d *daemon.Daemon, key domain.MonthKey) error {
	progress, err := d.Tracker.ReportMonth(userID, key)
	if err != nil {
		return err
	}

	fmt.Printf("Month %s: %d points\n\n", progress.Month, progress.Points)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tTOTAL\tGOAL\tPROGRESS")
	goals := make(map[domain.Metric]domain.GoalProgress, len(progress.Goals))
	for _, g := range progress.Goals {
		goals[g.Metric] = g
	}
	for _, m := range domain.ScoredMetrics {
		if g, ok := goals[m]; ok {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\n", m, g.Total, g.Goal, g.Pct)
		} else {
			fmt.Fprintf(w, "%s\t%d\t-\t-\n", m, progress.Totals[m])
		}
	}
	return w.Flush()
}
