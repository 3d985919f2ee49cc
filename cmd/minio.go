package cmd

import (
	"fmt"

	"SongFormat/storage"

	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储桶管理",
	Long:  `在本地 chart 目录和 MinIO 存储桶之间同步文档，或查看存储桶统计信息。`,
}

func openMinio(cmd *cobra.Command) (*storage.MinioStore, error) {
	fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)
	m, err := storage.NewMinioStore(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("无法连接到MinIO: %w", err)
	}
	return m.WithPrefix(minioPrefix), nil
}

var minioPushCmd = &cobra.Command{
	Use:   "push [slug-prefix]",
	Short: "Upload local chart documents to the bucket",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return minioSync(cmd, args, true)
	},
}

var minioPullCmd = &cobra.Command{
	Use:   "pull [slug-prefix]",
	Short: "Download chart documents from the bucket",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return minioSync(cmd, args, false)
	},
}

func minioSync(cmd *cobra.Command, args []string, push bool) error {
	local, err := storage.NewLocalStore(cfg.ChartDir)
	if err != nil {
		return err
	}
	remote, err := openMinio(cmd)
	if err != nil {
		return err
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	var n int
	if push {
		n, err = storage.Copy(cmd.Context(), remote, local, prefix)
	} else {
		n, err = storage.Copy(cmd.Context(), local, remote, prefix)
	}
	fmt.Printf("copied %d documents\n", n)
	return err
}

var minioStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "显示存储桶统计信息",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := openMinio(cmd)
		if err != nil {
			return err
		}
		stats, err := remote.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("总文件数: %d\n", stats.TotalObjects)
		fmt.Printf("总大小: %.2f MB\n", float64(stats.TotalSize)/(1024*1024))
		if !stats.LastModified.IsZero() {
			fmt.Printf("最后修改时间: %s\n", stats.LastModified.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	minioCmd.PersistentFlags().StringVarP(&minioPrefix, "prefix", "p", "", "object key prefix inside the bucket")
	minioCmd.AddCommand(minioPushCmd, minioPullCmd, minioStatsCmd)
	rootCmd.AddCommand(minioCmd)
}
