package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/quartetlab/quartet/infrastructure/cache"
)

var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Drop all cached generation results",
	Long: "Reset-cache clears the shared Redis response cache. A " +
		"deployment using the in-process cache resets through the " +
		"server's /api/reset-cache endpoint instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if currentConfig.RedisURL == "" {
			return fmt.Errorf("no redis url configured; use POST /api/reset-cache against the running server")
		}

		opts, err := redis.ParseURL(currentConfig.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		store := cache.NewRedisStore(client, "quartet")
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCacheCmd)
}
