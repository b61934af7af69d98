package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bnema/mfimport/internal/adapters/mediafire"
	tomlrepo "github.com/bnema/mfimport/internal/adapters/repo/toml"
	"github.com/bnema/mfimport/internal/application"
	"github.com/bnema/mfimport/internal/config"
	"github.com/bnema/mfimport/internal/logging"
	"github.com/bnema/mfimport/internal/ports"
)

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	reports    *tomlrepo.ReportRepository
	history    *application.HistoryService
	httpClient *http.Client
}

func (a *app) wire(cmd *cobra.Command, opts *rootOptions) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		config.KeyPoolSize:     flagPoolSize,
		config.KeyTokenVersion: flagTokenVersion,
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, opts.verbose, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	reports, err := tomlrepo.NewReportRepository(v)
	if err != nil {
		return fmt.Errorf("wire history repository: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.reports = reports
	a.history = application.NewHistoryService(reports)
	if a.httpClient == nil {
		a.httpClient = &http.Client{}
	}
	return nil
}

// session builds a MediaFire client and the import service bound to it. The
// caller owns the client and must Close it.
func (a *app) session() (*mediafire.Client, *application.ImportService, error) {
	if err := a.cfg.RequireAppID(); err != nil {
		return nil, nil, err
	}

	poolSize := mediafire.ClampPoolSize(a.cfg.PoolSize)
	if poolSize != a.cfg.PoolSize {
		a.logger.Warn("session token pool size clamped",
			zap.Int("requested", a.cfg.PoolSize),
			zap.Int("pool_size", poolSize),
		)
	}

	client, err := mediafire.NewClient(mediafire.Config{
		AppID:  a.cfg.AppID,
		AppKey: a.cfg.AppKey,
		Endpoint: mediafire.Endpoint{
			BaseURL:       a.cfg.BaseURL,
			Host:          a.cfg.Host,
			Version:       a.cfg.APIVersion,
			TokenVersion:  a.cfg.TokenVersion,
			ForceRelative: a.cfg.ForceRelative,
			Timeout:       a.cfg.Timeout,
		},
		PoolSize:      poolSize,
		RenewInterval: a.cfg.RenewInterval,
	}, a.httpClient, a.logger.Named("mediafire"))
	if err != nil {
		return nil, nil, fmt.Errorf("wire mediafire client: %w", err)
	}

	service, err := application.NewImportService(client, a.reports, client.Host(), ports.SystemClock{}, a.logger.Named("import"))
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("wire import service: %w", err)
	}

	return client, service, nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
