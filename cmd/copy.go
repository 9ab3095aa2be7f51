package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyOverwrite bool

var copyCmd = &cobra.Command{
	Use:   "copy <source> <destination>",
	Short: "安全地复制文件",
	Long: `把文件从源路径复制到目标路径。
先写入临时文件并校验内容，校验通过后才替换到目标位置。
目标已存在时默认失败，可用 --overwrite 覆盖。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Copy(args[0], args[1], copyOverwrite)
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}
		fmt.Printf("已复制: %s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyOverwrite, "overwrite", false, "目标已存在时覆盖")
	rootCmd.AddCommand(copyCmd)
}
