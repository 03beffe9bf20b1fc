package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"eshika-chat/config"
	"eshika-chat/internal/repository"
	"eshika-chat/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Eshika chat - user store tool",
		Long: `Inspect the user store and copy users between store backends.

Backends: json (local users.json), s3 (users.json in a bucket), bolt, redis.
Connection settings come from the same environment / .env as the API.`,
		SilenceUsage: true,
	}
	root.AddCommand(newStatusCmd(), newCopyCmd())
	return root
}

func newStatusCmd() *cobra.Command {
	var driver string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check store connectivity and count users and chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if driver == "" {
				driver = cfg.StoreDriver
			}
			return runStatus(cmd.Context(), cfg, driver)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "store driver (default: STORE_DRIVER)")
	return cmd
}

func newCopyCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy every user from one store backend into another",
		Example: `  migrate copy --from json --to bolt
  migrate copy --from bolt --to redis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == to {
				return fmt.Errorf("--from and --to must differ")
			}
			return runCopy(cmd.Context(), config.LoadConfig(), from, to)
		},
	}
	cmd.Flags().StringVar(&from, "from", repository.DriverJSON, "source store driver")
	cmd.Flags().StringVar(&to, "to", repository.DriverBolt, "destination store driver")
	return cmd
}

func runStatus(ctx context.Context, cfg *config.Config, driver string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := repository.NewWithDriver(ctx, driver, cfg, logger.NewNop())
	if err != nil {
		return fmt.Errorf("open %s store: %w", driver, err)
	}
	defer repo.Close()

	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("%s store unreachable: %w", driver, err)
	}
	log.Printf("Store %s: OK", driver)

	users, err := repo.List(ctx)
	if err != nil {
		return err
	}
	chats, messages := 0, 0
	for _, u := range users {
		chats += len(u.Chats)
		for _, c := range u.Chats {
			messages += len(c.Messages)
		}
	}
	log.Printf("Users: %d, chats: %d, messages: %d", len(users), chats, messages)
	return nil
}

func runCopy(ctx context.Context, cfg *config.Config, from, to string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	n, err := copyUsers(ctx, cfg, from, to)
	if err != nil {
		return err
	}
	log.Printf("Copied %d users from %s to %s", n, from, to)
	return nil
}

func copyUsers(ctx context.Context, cfg *config.Config, from, to string) (int, error) {
	src, err := repository.NewWithDriver(ctx, from, cfg, logger.NewNop())
	if err != nil {
		return 0, fmt.Errorf("open source %s: %w", from, err)
	}
	defer src.Close()

	dst, err := repository.NewWithDriver(ctx, to, cfg, logger.NewNop())
	if err != nil {
		return 0, fmt.Errorf("open destination %s: %w", to, err)
	}
	defer dst.Close()

	return repository.CopyUsers(ctx, src, dst)
}
