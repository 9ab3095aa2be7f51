package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/moyu-x/folder-manager/internal/fileops"
)

var (
	organizeCopy  bool
	organizeSniff bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize <source> <master>",
	Short: "按分类整理目录中的文件",
	Long: `遍历源目录中的所有文件，按扩展名分类后移动到主目录的分类子目录中。
目标名冲突时自动追加 " (copy N)" 后缀，绝不覆盖已有文件。
单个文件失败不会中断整体流程。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Organize(args[0], args[1], fileops.OrganizeOptions{
			Copy:  organizeCopy,
			Sniff: organizeSniff,
		})
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}

		total := 0
		names := make([]string, 0, len(res.Payload))
		for name := range res.Payload {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %d 个文件\n", name, res.Payload[name])
			total += res.Payload[name]
		}
		fmt.Printf("共整理 %d 个文件\n", total)
		return nil
	},
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeCopy, "copy", false, "复制而非移动文件")
	organizeCmd.Flags().BoolVar(&organizeSniff, "sniff", false, "无法按扩展名分类时按内容识别")
	rootCmd.AddCommand(organizeCmd)
}
