package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"

	"github.com/meverselabs/farms/cmd/closer"
	"github.com/meverselabs/farms/cmd/config"
	"github.com/meverselabs/farms/core/backend"
	_ "github.com/meverselabs/farms/core/backend/badger_driver"
	_ "github.com/meverselabs/farms/core/backend/bolt_driver"
	_ "github.com/meverselabs/farms/core/backend/leveldb_driver"
	_ "github.com/meverselabs/farms/core/backend/memory_driver"
	"github.com/meverselabs/farms/core/farmer"
	"github.com/meverselabs/farms/service/apiserver"
	"github.com/meverselabs/farms/service/apiserver/farmapi"
	"github.com/meverselabs/farms/service/journal"
)

// Config is a configuration for the cmd
type Config struct {
	StoreRoot   string `toml:"store_root" yaml:"store_root" env:"store_root"`
	StoreDriver string `toml:"store_driver" yaml:"store_driver" env:"store_driver"`
	RPCPort     int    `toml:"rpc_port" yaml:"rpc_port" env:"rpc_port"`
	JournalPath string `toml:"journal_path" yaml:"journal_path" env:"journal_path"`
	MaxRetry    int    `toml:"max_retry" yaml:"max_retry" env:"max_retry"`
	LogLevel    string `toml:"log_level" yaml:"log_level" env:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format" env:"log_format"`
	SentryDSN   string `toml:"sentry_dsn" yaml:"sentry_dsn" env:"sentry_dsn"`
}

func (cfg *Config) setDefaults() {
	if len(cfg.StoreRoot) == 0 {
		cfg.StoreRoot = "./fdata"
	}
	if len(cfg.StoreDriver) == 0 {
		cfg.StoreDriver = "leveldb"
	}
	if cfg.RPCPort == 0 {
		cfg.RPCPort = 48001
	}
	if len(cfg.JournalPath) == 0 {
		cfg.JournalPath = filepath.Join(cfg.StoreRoot, "journal.db")
	}
	if len(cfg.LogLevel) == 0 {
		cfg.LogLevel = "info"
	}
}

func setupLog(cfg *Config) error {
	lv, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(lv)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if len(cfg.SentryDSN) > 0 {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		hook.Timeout = 5 * time.Second
		hook.StacktraceConfiguration.Enable = true
		logrus.AddHook(hook)
	}
	return nil
}

type daemon struct {
	fr  *farmer.Farmer
	jn  *journal.Journal
	api *apiserver.APIServer
}

// newDaemon opens the store and the journal and wires the farmer to the api.
// Everything opened is added to the closer.
func newDaemon(cfg *Config, cm *closer.Manager) (*daemon, error) {
	if cfg.StoreDriver != "memory" {
		if err := os.MkdirAll(cfg.StoreRoot, 0o755); err != nil {
			return nil, err
		}
	}
	st, err := backend.Create(cfg.StoreDriver, filepath.Join(cfg.StoreRoot, "store"))
	if err != nil {
		return nil, err
	}
	cm.Add("store", st)

	fr := farmer.NewFarmer(st, farmer.SystemClock{})
	if cfg.MaxRetry > 0 {
		fr.SetMaxRetry(cfg.MaxRetry)
	}

	if dir := filepath.Dir(cfg.JournalPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	jn, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	cm.Add("journal", closer.CloserFunc(func() {
		if err := jn.Close(); err != nil {
			logrus.WithError(err).Warn("close journal")
		}
	}))
	fr.AddEventHandler(jn)

	api := apiserver.NewAPIServer()
	if err := farmapi.Register(api, fr, jn); err != nil {
		return nil, err
	}
	cm.Add(api.Name(), closer.CloserFunc(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := api.Close(ctx); err != nil {
			logrus.WithError(err).Warn("close api server")
		}
	}))
	return &daemon{
		fr:  fr,
		jn:  jn,
		api: api,
	}, nil
}

func main() {
	var cfg Config

	cfgPath := flag.String("cfg", "./config.toml", "config file path, toml or yaml")
	flag.Parse()

	if _, err := os.Stat(*cfgPath); err == nil {
		if err := config.LoadFile(*cfgPath, &cfg); err != nil {
			logrus.Fatal(err)
		}
	}
	if err := config.LoadEnv("FARMD", &cfg, ".env"); err != nil {
		logrus.Fatal(err)
	}
	cfg.setDefaults()
	if err := setupLog(&cfg); err != nil {
		logrus.Fatal(err)
	}

	cm := closer.NewManager()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cm.CloseAll()
	}()
	defer cm.CloseAll()

	d, err := newDaemon(&cfg, cm)
	if err != nil {
		logrus.Fatal(err)
	}
	go func() {
		logrus.WithFields(logrus.Fields{
			"driver": cfg.StoreDriver,
			"port":   cfg.RPCPort,
		}).Info("farmd started")
		if err := d.api.Run(":" + strconv.Itoa(cfg.RPCPort)); err != nil {
			logrus.WithError(err).Error("api server stopped")
			cm.CloseAll()
		}
	}()

	cm.Wait()
}
