package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwarden/schedule/internal/config"
	"github.com/cwarden/schedule/internal/log"
	"github.com/cwarden/schedule/internal/store"
	"github.com/cwarden/schedule/internal/ui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	cfgFile  string
	storeDir string
	backend  string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schedule",
	Short: "A terminal calendar with month, week and day views",
	Long: `Schedule is a terminal calendar. Events are kept in a single JSON
document in a file or in Redis and shown in month, week and day views.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default searches ~/.config/schedule)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "Directory of the event file (file backend)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: file, redis or memory")
}

func initConfig() {
	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	// Flags win over the config file and the environment.
	if storeDir != "" {
		cfg.StoreDir = storeDir
	}
	if backend != "" {
		cfg.StoreBackend = backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// openStore builds the configured KV backend and loads the events. The
// returned close function releases the backend.
func openStore(ctx context.Context) (*store.Store, store.KV, func(), error) {
	var kv store.KV
	closeFn := func() {}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		r := store.NewRedisKV(store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		kv = r
		closeFn = func() { r.Close() }

	case config.BackendMemory:
		kv = store.NewMemoryKV()

	default:
		if err := config.EnsureDir(cfg.StoreDir); err != nil {
			return nil, nil, nil, fmt.Errorf("create store directory: %w", err)
		}
		kv = store.NewFileKV(cfg.StoreDir)
	}

	s, err := store.Open(ctx, kv, store.WithKey(cfg.StoreKey))
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return s, kv, closeFn, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so log lines go to a file.
	if cfg.LogFile != "" {
		if err := config.EnsureDir(filepath.Dir(cfg.LogFile)); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	s, kv, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	if fileKV, ok := kv.(*store.FileKV); ok && cfg.WatchStore {
		watcher, err := store.Watch(s, fileKV)
		if err != nil {
			// Not fatal; external edits just won't show up live.
			log.Error("store watcher unavailable", err, "dir", cfg.StoreDir)
		} else {
			defer watcher.Close()
		}
	}

	model := ui.NewModel(cfg, s)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
