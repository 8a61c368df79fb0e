package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/resume-slides/internal/store"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visitor and interaction statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := store.Open(cmd.Context(), cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context(), time.Now())
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Page views:       %d\n", stats.TotalVisitors)
		fmt.Printf("Unique visitors:  %d\n", stats.UniqueVisitors)
		fmt.Printf("Today:            %d\n", stats.VisitorsToday)
		fmt.Printf("This week:        %d\n", stats.VisitorsThisWeek)
		fmt.Printf("Events:           %d\n", stats.TotalEvents)
		fmt.Printf("Project clicks:   %d\n", stats.TotalClicks)
		if len(stats.TopLinks) > 0 {
			fmt.Println("\nTop project links:")
			for _, l := range stats.TopLinks {
				fmt.Printf("  %-40s %-8s %d\n", l.Project, l.Link, l.Clicks)
			}
		}
		if len(stats.Sections) > 0 {
			fmt.Println("\nSection views:")
			for _, s := range stats.Sections {
				fmt.Printf("  %-12s %d\n", s.Section, s.Views)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(statsCmd)
}
