package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteSecure bool

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "删除文件或目录",
	Long: `删除指定的文件或目录（目录递归删除）。
使用 --secure 时先用零字节覆写普通文件的内容再删除；
目录始终走普通递归删除，--secure 对目录无效。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Delete(args[0], deleteSecure)
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}
		fmt.Printf("已删除: %s\n", args[0])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteSecure, "secure", false, "删除前覆写文件内容")
	rootCmd.AddCommand(deleteCmd)
}
