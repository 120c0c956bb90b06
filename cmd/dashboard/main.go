package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"finis-oculus/internal/auth"
	"finis-oculus/internal/dashboard/config"
	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/internal/dashboard/notifier"
	"finis-oculus/internal/dashboard/repository"
	"finis-oculus/internal/dashboard/service"
	"finis-oculus/internal/dashboard/view"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/telegram"
	"finis-oculus/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	configPath string
	columns    int
)

// app is the wiring shared by all dashboard commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	board    service.Board
	renderer *view.Renderer
	digest   *notifier.TelegramNotifier
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	api := repository.NewAPIRepository(cfg.Server.BaseURL, cfg.Server.Timeout, appLogger)

	notifiers := notifier.Multi{notifier.NewConsoleNotifier(os.Stderr)}
	var digest *notifier.TelegramNotifier
	if cfg.Telegram.Enabled {
		sender, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram: %w", err)
		}
		digest = notifier.NewTelegramNotifier(sender)
		notifiers = append(notifiers, digest)
	}

	session, err := service.SignIn(ctx, api, cfg.Auth.Token)
	if err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}
	holder := &auth.SessionHolder{}
	updates := make(chan *auth.Session, 1)
	updates <- session
	close(updates)
	holder.Follow(ctx, updates)

	return &app{
		cfg:      cfg,
		log:      appLogger,
		board:    service.NewBoard(api, holder, notifiers, appLogger),
		renderer: view.NewRenderer(os.Stdout, columns),
		digest:   digest,
	}, nil
}

func withApp(run func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()
		return run(ctx, a, args)
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Shows the watchlist cards once",
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		if err := a.board.Refresh(ctx); err != nil {
			return err
		}
		return a.renderer.Render(a.board.Cards())
	}),
}

var addCmd = &cobra.Command{
	Use:   "add TICKER",
	Short: "Adds a ticker to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := a.board.Refresh(ctx); err != nil {
			return err
		}
		if err := a.board.AddTicker(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s added to watchlist!\n", args[0])
		return a.renderer.Render(a.board.Cards())
	}),
}

var removeCmd = &cobra.Command{
	Use:   "remove TICKER",
	Short: "Removes a ticker from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := a.board.RemoveTicker(ctx, args[0]); err != nil {
			return err
		}
		return a.renderer.Render(a.board.Cards())
	}),
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refreshes and redraws the watchlist on an interval",
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		w := service.NewWatcher(a.board, a.cfg.Refresh.Interval, a.log)
		w.OnRefresh(func(ctx context.Context, cards []dto.Card) {
			fmt.Print("\033[H\033[2J")
			if err := a.renderer.Render(cards); err != nil {
				a.log.Error("Failed to render watchlist", logger.ErrorField(err))
			}
		})
		if a.digest != nil {
			w.OnRefresh(func(ctx context.Context, cards []dto.Card) {
				utils.GoSafe(func() {
					if err := a.digest.PublishDigest(ctx, cards); err != nil {
						a.log.Error("Failed to publish digest", logger.ErrorField(err))
					}
				})
			})
		}
		return w.Run(ctx)
	}),
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Terminal watchlist for Finis Oculus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().IntVar(&columns, "columns", 3, "Cards per row")

	rootCmd.AddCommand(listCmd, addCmd, removeCmd, watchCmd)
	if err := rootCmd.Execute(); err != nil {
		// Board failures were already reported through the notifier.
		if !isReported(err) {
			log.Printf("Error executing dashboard CLI: %s", err)
		}
		os.Exit(1)
	}
}

func isReported(err error) bool {
	for _, target := range []error{
		service.ErrDuplicate,
		service.ErrPlanLimit,
		service.ErrInvalidSymbol,
		service.ErrBackendWrite,
		service.ErrFetch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
