package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashAlgorithm string

var hashCmd = &cobra.Command{
	Use:   "hash <path>",
	Short: "计算文件的内容哈希",
	Long:  `以流式方式计算文件的内容哈希，支持 md5、sha1、sha256、sha512。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res := eng.Hash(args[0], hashAlgorithm)
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorMessage)
		}
		fmt.Printf("%s  %s  %s\n", res.Payload.Algorithm, res.Payload.HashValue, res.Payload.FilePath)
		return nil
	},
}

func init() {
	hashCmd.Flags().StringVarP(&hashAlgorithm, "algorithm", "a", "sha256", "哈希算法 (md5/sha1/sha256/sha512)")
	rootCmd.AddCommand(hashCmd)
}
