package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/store"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete visitor and event records older than the retention window",
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

		n, err := st.Cleanup(cmd.Context(), time.Now(), cfg.Database.Retention())
		if err != nil {
			return err
		}
		logger.Info("privacy cleanup", zap.Int64("deleted", n), zap.Int("retention_days", cfg.Database.RetentionDays))
		fmt.Printf("Deleted %d records older than %d days\n", n, cfg.Database.RetentionDays)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
