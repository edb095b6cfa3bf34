package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/doeshing/byte-agent-go/internal/application/chunking"
	configapp "github.com/doeshing/byte-agent-go/internal/application/config"
	"github.com/doeshing/byte-agent-go/internal/application/dispatch"
	"github.com/doeshing/byte-agent-go/internal/application/doctor"
	"github.com/doeshing/byte-agent-go/internal/application/intent"
	"github.com/doeshing/byte-agent-go/internal/application/summarize"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/archive"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cache"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/config"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/filesystem"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/history"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/security"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/summarizer"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
	"github.com/doeshing/byte-agent-go/internal/pkg/logger"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Options are the process-level overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	Workspace  string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Workspace      *filesystem.Local
	Guard          *security.Guardrail
	Summarizers    *summarizer.Factory
	CacheStore     ports.CacheRepository
	HistoryStore   ports.HistoryRepository
	Dispatcher     *dispatch.Dispatcher
	Session        *dispatch.Session
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Workspace != "" {
		cfg.Workspace.Root = opts.Workspace
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log := logger.NewStd(opts.Verbose)

	workspace, err := filesystem.NewLocal(homedir.Expand(cfg.Workspace.Root))
	if err != nil {
		return nil, err
	}

	guardrail, err := security.NewGuardrail(homedir.Expand(cfg.Security.RulesFile), cfg.Security.Protected)
	if err != nil {
		log.Warn("guardrail rules unreadable, using defaults", map[string]interface{}{"error": err.Error()})
		guardrail, err = security.NewGuardrail("", cfg.Security.Protected)
		if err != nil {
			return nil, err
		}
	}

	timeout := time.Duration(cfg.Summarizer.TimeoutSeconds) * time.Second
	factory := summarizer.NewFactory(timeout)
	cacheStore := cache.NewFileCache(homedir.AppPath("cache"), 0, 0)

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		historyStore = history.Open(homedir.Expand(cfg.History.Path), log)
		pruneHistory(historyStore, cfg.History.RetentionDays, log)
	}

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Workspace:      workspace,
		Guard:          guardrail,
		Summarizers:    factory,
		CacheStore:     cacheStore,
		HistoryStore:   historyStore,
	}

	pipeline, err := c.Pipeline("")
	if err != nil {
		return nil, err
	}

	c.Dispatcher = &dispatch.Dispatcher{
		FileSystem: workspace,
		Archive:    archive.NewZipArchive(workspace),
		Summaries:  pipeline,
		Guard:      guardrail,
		Logger:     log,
	}
	c.Session = &dispatch.Session{
		Classifier: intent.NewClassifier(),
		Dispatcher: c.Dispatcher,
		History:    historyStore,
		Logger:     log,
		Now:        time.Now,
	}
	c.DoctorService = &doctor.Service{
		ConfigProvider:  cfgLoader,
		SecurityService: guardrail,
		HistoryStore:    historyStore,
	}
	return c, nil
}

// Pipeline builds a summarization pipeline over the named backend, or the
// configured default when backend is empty.
func (c *Container) Pipeline(backend string) (*summarize.Pipeline, error) {
	def, err := c.Config.PickBackend(backend)
	if err != nil {
		return nil, err
	}
	client, err := c.Summarizers.ForBackend(def)
	if err != nil {
		return nil, err
	}
	if c.Config.Summarizer.Cache && c.CacheStore != nil {
		client = summarizer.NewCached(client, c.CacheStore, c.Logger)
	}
	return summarize.NewPipeline(client, chunking.FromSettings(c.Config.Chunking), c.Logger), nil
}

// Close releases the history database.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func pruneHistory(store ports.HistoryRepository, days int, log ports.Logger) {
	if days <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	removed, err := store.Prune(cutoff)
	if err != nil {
		log.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if removed > 0 {
		log.Debug("history pruned", map[string]interface{}{"removed": removed})
	}
}
