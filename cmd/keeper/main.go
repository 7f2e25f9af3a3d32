package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/config"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/KirkDiggler/rpg-keeper/internal/logging"
	"github.com/KirkDiggler/rpg-keeper/internal/services"
	"github.com/KirkDiggler/rpg-keeper/internal/storage"
)

const usage = `usage: keeper <command> [args]

commands:
  systems                          list the supported game systems
  stats [system]                   show storage and campaign statistics
  generate <system> [rarity] [type] generate a treasure item and add it to the vault
  suggest <query>                  suggest rule titles close to query
  backup <file>                    write a backup of everything
  restore <file>                   replace everything with a backup
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start", zap.Error(err))
	}
	defer app.close()

	if err := app.run(ctx, flag.Args()); err != nil {
		logger.Error("Command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		app.close()
		os.Exit(1)
	}
}

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	redis    *redis.Client
	provider *services.Provider
	store    *storage.Store
	saver    *storage.AutoSaver
	snapshot *storage.Snapshot
	closed   bool
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}
	providerConfig := &services.ProviderConfig{Logger: logger}

	if cfg.StorageBackend == config.StorageRedis {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			logger.Warn("Failed to connect to Redis, falling back to in-memory repositories", zap.Error(err))
		} else {
			a.redis = client
			providerConfig.RedisClient = client
			logger.Info("Using Redis for persistence", zap.String("addr", opts.Addr))
		}
	}
	a.provider = services.NewProvider(providerConfig)

	backend, err := openBackend(ctx, cfg.Snapshot)
	if err != nil {
		return nil, err
	}
	a.store = storage.NewStore(&storage.StoreConfig{Backend: backend, Logger: logger.Named("storage")})

	a.snapshot, err = a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if a.snapshot.SelectedSystem == "" {
		a.snapshot.SelectedSystem = cfg.SelectedSystem
	}

	// Redis already holds the collections; the snapshot only seeds memory
	if a.redis == nil {
		if err := a.provider.Restore(ctx, a.snapshot); err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
	}

	a.saver = storage.NewAutoSaver(&storage.AutoSaverConfig{
		Store: a.store,
		Delay: cfg.Snapshot.AutoSaveDelay,
		Source: func(ctx context.Context) (*storage.Snapshot, error) {
			return a.provider.Snapshot(ctx, a.snapshot)
		},
		Logger: logger.Named("autosave"),
	})
	return a, nil
}

func openBackend(ctx context.Context, cfg config.SnapshotConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case config.SnapshotSQLite:
		return storage.OpenSQLite(ctx, cfg.Path)
	default:
		return storage.NewFileBackend(cfg.Path)
	}
}

func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.saver.Close(ctx); err != nil {
		a.logger.Error("Failed to flush auto save", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close snapshot store", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "systems":
		for _, sys := range rulebook.Default().Systems() {
			fmt.Printf("%-20s %s\n", sys.ID, sys.Name)
		}
		return nil

	case "stats":
		systemID := ""
		if len(args) > 1 {
			systemID = args[1]
		}
		return a.stats(ctx, systemID)

	case "generate":
		if len(args) < 2 {
			return errors.New("generate needs a system")
		}
		rarity, itemType := argAt(args, 2), argAt(args, 3)
		draft, err := a.provider.TreasureService.Generate(args[1], rarity, itemType)
		if err != nil {
			return err
		}
		item, err := a.provider.TreasureService.AddToVault(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s, %s) worth %s\n  %s\n", item.Name, item.Rarity, item.Type,
			a.provider.TreasureService.FormatValue(item.Value, item.Currency), item.FullDescription)
		a.saver.Schedule()
		return nil

	case "suggest":
		if len(args) < 2 {
			return errors.New("suggest needs a query")
		}
		titles, err := a.provider.RulesService.Suggest(ctx, args[1], 5)
		if err != nil {
			return err
		}
		for _, title := range titles {
			fmt.Println(title)
		}
		return nil

	case "backup":
		if len(args) < 2 {
			return errors.New("backup needs a file")
		}
		snap, err := a.provider.Snapshot(ctx, a.snapshot)
		if err != nil {
			return err
		}
		data, err := storage.ExportBackup(snap, clock.New().Now())
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], data, 0o644)

	case "restore":
		if len(args) < 2 {
			return errors.New("restore needs a file")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		snap, err := storage.ImportBackup(data, clock.New().Now())
		if err != nil {
			return err
		}
		if err := a.provider.Restore(ctx, snap); err != nil {
			return err
		}
		a.snapshot = snap
		return a.store.Save(ctx, snap)

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) stats(ctx context.Context, systemID string) error {
	storeStats, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	campaignStats, err := a.provider.CampaignService.CalculateStats(ctx, systemID)
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot: %s, last sync %s\n", storeStats.UsedFormatted, storeStats.LastSync.Format(time.RFC3339))
	for name, count := range storeStats.Counts {
		fmt.Printf("  %-14s %d\n", name, count)
	}
	fmt.Printf("Campaigns: %d, active players: %d, sessions: %d, hours played: %.1f\n",
		campaignStats.TotalCampaigns, campaignStats.ActivePlayers, campaignStats.TotalSessions, campaignStats.TotalHours)
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
