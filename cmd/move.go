package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveOverwrite bool

var moveCmd = &cobra.Command{
	Use:   "move <source> <destination>",
	Short: "安全地移动文件",
	Long: `把文件从源路径移动到目标路径。
同一文件系统内直接重命名；跨文件系统时复制并校验内容后再删除源文件，
中途失败会回滚已写入的目标。目标已存在时默认失败，可用 --overwrite 覆盖。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Move(args[0], args[1], moveOverwrite)
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}
		fmt.Printf("已移动: %s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	moveCmd.Flags().BoolVar(&moveOverwrite, "overwrite", false, "目标已存在时覆盖")
	rootCmd.AddCommand(moveCmd)
}
