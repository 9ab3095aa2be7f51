package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "查看单个文件或目录的信息",
	Long:  `查看单个文件或目录的名称、大小、修改时间等信息，普通文件会附带所属分类。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Info(args[0])
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}

		data, err := json.MarshalIndent(res.Payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
