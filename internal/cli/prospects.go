package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/herm409/activity-tracker-app-sub000/internal/daemon"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

func init() {
	prospectsCmd.Flags().BoolVar(&prospectsDue, "due", false, "Only show prospects due for follow-up")
	rootCmd.AddCommand(prospectsCmd)
}

var prospectsDue bool

var prospectsCmd = &cobra.Command{
	Use:   "prospects",
	Short: "List the prospect pipeline",
	RunE:  runProspects,
}

func runProspects(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	var list []domain.Prospect
	if prospectsDue {
		list, err = d.Pipeline.Due(userID)
	} else {
		list, err = d.Pipeline.List(userID)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		if prospectsDue {
			fmt.Println("No follow-ups due.")
		} else {
			fmt.Println("No prospects yet.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTAGE\tNEXT FOLLOW-UP\tUPDATED")
	for _, p := range list {
		follow := "-"
		if !p.NextFollow.IsZero() {
			follow = p.NextFollow.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Name,
			p.Stage,
			follow,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
