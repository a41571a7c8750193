package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal"
	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

const (
	defaultDataDir         = "."
	defaultCleanupInterval = time.Minute
)

type config struct {
	stage        string
	port         string
	dataDir      string
	databaseUrl  string
	migrationDir string
	logLevel     string
	gameTTL      time.Duration
	seed         int64
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadEnv() {
	if os.Getenv("STAGE") == api.StageProd {
		return
	}
	// .env is optional in dev
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env", "err", err)
	}
}

func newRootCmd() *cobra.Command {
	loadEnv()

	cfg := config{}
	gameTTL, err := time.ParseDuration(envOr("GAME_TTL", "30m"))
	if err != nil {
		log.Warn("invalid GAME_TTL, using default", "value", os.Getenv("GAME_TTL"))
		gameTTL = time.Minute * 30
	}

	rootCmd := &cobra.Command{
		Use:           "battleship",
		Short:         "Single player battleship server against a computer opponent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(cfg.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetReportTimestamp(true)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.stage, "stage", envOr("STAGE", api.StageDev), "deployment stage (dev or prod)")
	flags.StringVar(&cfg.dataDir, "data-dir", envOr("DATA_DIR", defaultDataDir), "directory of the scoreboard file")
	flags.StringVar(&cfg.databaseUrl, "database-url", os.Getenv("DATABASE_URL"), "postgres url; the scoreboard file is used when empty")
	flags.StringVar(&cfg.migrationDir, "migration-dir", envOr("MIGRATION_DIR", db.DefaultMigrationDir), "migration source url")
	flags.StringVar(&cfg.logLevel, "log-level", envOr("LOG_LEVEL", "info"), "debug, info, warn or error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the websocket game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.port, "port", envOr("PORT", "8000"), "listening port")
	serveCmd.Flags().DurationVar(&cfg.gameTTL, "game-ttl", gameTTL, "idle time after which a game is removed")
	serveCmd.Flags().Int64Var(&cfg.seed, "seed", 0, "seed for every game's randomness; 0 seeds from the clock")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the persisted scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(serveCmd, statsCmd)
	return rootCmd
}

func openStore(cfg config) (scoreboard.Store, func(), error) {
	if cfg.databaseUrl == "" {
		log.Info("using file scoreboard", "dir", cfg.dataDir)
		return scoreboard.NewFileStore(cfg.dataDir), func() {}, nil
	}

	ipNet, err := internal.ServerIpNet()
	if err != nil {
		return nil, nil, err
	}

	pgDb := db.MustConnectToDb(cfg.databaseUrl, cfg.migrationDir)
	dbManager := sqlc.NewDbManager(sqlc.New(pgDb), pqtype.Inet{IPNet: ipNet, Valid: true})

	log.Info("using postgres scoreboard", "server_ip", ipNet.IP.String())
	return dbManager.Scoreboard, func() { pgDb.Close() }, nil
}

func runServe(ctx context.Context, cfg config) error {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sb, err := scoreboard.New(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to load scoreboard: %w", err)
	}

	managerOpts := []mb.ManagerOption{
		mb.WithGameTTL(cfg.gameTTL),
		mb.WithResultHook(api.RecordGameResult(sb)),
	}
	if cfg.seed != 0 {
		managerOpts = append(managerOpts, mb.WithSeed(cfg.seed))
	}

	gameManager := mb.NewBattleshipGameManager(managerOpts...)
	sessionManager := mc.NewBattleshipSessionManager()

	server, err := api.NewServer(sessionManager, gameManager, sb, api.WithPort(cfg.port), api.WithStage(cfg.stage))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go gameManager.CleanupPeriodically(ctx, defaultCleanupInterval)

	return server.Run(ctx)
}

func runStats(ctx context.Context, cfg config) error {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := store.Load(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal("command failed", "err", err)
	}
}
