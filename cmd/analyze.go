package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/folder-manager/internal/analyzer"
)

var (
	analyzeHashes        bool
	analyzeIncludeHidden bool
	analyzeSniff         bool
	analyzeWorkers       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "分析目录树并聚合统计信息",
	Long: `遍历指定目录下的整棵子树，按扩展名和分类聚合文件数量与大小。
单个条目读取失败只计入跳过数，不会中断整次分析。
使用 --hash 时额外计算每个文件的快速哈希并输出内容一致的文件分组。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		opts := analyzer.Options{
			IncludeHidden: analyzeIncludeHidden || cfg.Analyzer.IncludeHidden,
			Excluded:      cfg.Analyzer.Excluded,
			Hashes:        analyzeHashes,
			DetectContent: analyzeSniff,
			Workers:       analyzeWorkers,
		}
		if opts.Workers <= 0 {
			opts.Workers = cfg.Performance.Workers
		}

		a := analyzer.New(afero.NewOsFs(), eng.Rules())
		res := a.Analyze(args[0], opts)
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}

		fmt.Println(res.Payload.String())

		if len(res.Payload.DuplicateGroups) > 0 {
			fmt.Println("内容一致的文件:")
			for i, group := range res.Payload.DuplicateGroups {
				fmt.Printf("  组 %d:\n", i+1)
				for _, path := range group {
					fmt.Printf("    %s\n", path)
				}
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeHashes, "hash", false, "计算快速哈希并输出重复分组")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeHidden, "include-hidden", false, "统计隐藏条目")
	analyzeCmd.Flags().BoolVar(&analyzeSniff, "sniff", false, "无法按扩展名分类时按内容识别")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "哈希计算的并发数 (默认取配置值)")
	rootCmd.AddCommand(analyzeCmd)
}
