package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "在原目录内重命名文件",
	Long: `把文件改名为新名称（仍在原目录内）。
新名称须通过文件名规则校验，目标名已存在时失败，不会覆盖。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Rename(args[0], args[1])
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}
		fmt.Printf("已重命名: %s\n", res.Payload)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
