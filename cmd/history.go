package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/folder-manager/config"
	"github.com/moyu-x/folder-manager/internal/journal"
	"github.com/moyu-x/folder-manager/pkg/logger"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的操作记录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.Journal.Enabled {
			return fmt.Errorf("操作日志未启用，请在配置中开启 journal.enabled")
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
			return err
		}

		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("暂无操作记录")
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("[%s] %s %s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Op, e.Source)
			if e.Dest != "" {
				line += " -> " + e.Dest
			}
			line += " (" + e.State + ")"
			if e.Error != "" {
				line += ": " + e.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "显示的记录条数")
	rootCmd.AddCommand(historyCmd)
}
