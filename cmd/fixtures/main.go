// fixtures 主程序
// 功能：为持久层集成测试生成订单样例数据，可以一次性执行，也可以作为 HTTP 服务运行
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wyfcoding/nanotrader/pkg/config"
	"github.com/wyfcoding/nanotrader/pkg/logger"
)

const defaultConfigPath = "configs/fixtures/config.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:           "fixtures",
		Short:         "Generate nanotrader order fixtures for persistence tests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env 不存在时忽略
			_ = godotenv.Load(".env")
			_ = godotenv.Load(".env.local")

			loaded, err := config.LoadWithDefaults(configPath)
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Config{
				Level:      loaded.Logger.Level,
				Format:     loaded.Logger.Format,
				Output:     loaded.Logger.Output,
				FilePath:   loaded.Logger.FilePath,
				MaxSize:    loaded.Logger.MaxSize,
				MaxBackups: loaded.Logger.MaxBackups,
				MaxAge:     loaded.Logger.MaxAge,
				Compress:   loaded.Logger.Compress,
				WithCaller: loaded.Logger.WithCaller,
			}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the TOML config file")

	// withApp 装配依赖后执行 fn，结束时释放资源
	withApp := func(fn func(ctx context.Context, a *app, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(ctx, a, cmd.OutOrStdout())
		}
	}

	var index int
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Print the seeded order at --index (clamped into range)",
		RunE: withApp(func(ctx context.Context, a *app, out io.Writer) error {
			return runSpecific(ctx, a, out, index)
		}),
	}
	orderCmd.Flags().IntVar(&index, "index", 0, "position of the seeded order")

	root.AddCommand(
		&cobra.Command{
			Use:   "seed",
			Short: "Ensure the seed orders exist and print them",
			RunE:  withApp(runSeed),
		},
		orderCmd,
		&cobra.Command{
			Use:   "random",
			Short: "Print a random seeded order",
			RunE:  withApp(runRandom),
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve orders and fixtures over HTTP",
			RunE:  withApp(func(ctx context.Context, a *app, _ io.Writer) error { return serve(ctx, a) }),
		},
	)
	return root
}

func runSeed(ctx context.Context, a *app, out io.Writer) error {
	if err := a.orders.Init(ctx); err != nil {
		return err
	}
	return printJSON(out, a.orders.Data())
}

func runSpecific(ctx context.Context, a *app, out io.Writer, index int) error {
	order, err := a.orders.SpecificOrder(ctx, index)
	if err != nil {
		return err
	}
	return printJSON(out, order)
}

func runRandom(ctx context.Context, a *app, out io.Writer) error {
	order, err := a.orders.RandomOrder(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, order)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
