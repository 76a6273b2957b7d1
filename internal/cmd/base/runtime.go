package base

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/annotation-forge/annotator/internal/config"
	"github.com/annotation-forge/annotator/internal/services"
	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/notifications/backends"
	"github.com/annotation-forge/annotator/pkg/outage"
	"github.com/annotation-forge/annotator/pkg/repository"
)

// Runtime is the wired object graph a command operates on.
type Runtime struct {
	Config *config.Config

	// Client is the general API client; LegacyClient is the second instance
	// kept for older call sites. Both report outages.
	Client       *apiclient.Client
	LegacyClient *apiclient.Client

	Outage        *outage.Listener
	Notifications *backends.Registry

	Annotations   *services.AnnotationService
	Discrepancies *services.DiscrepancyService
}

// LoadRuntime parses the configuration file and wires the runtime.
func (c *Command) LoadRuntime(path string) (*Runtime, error) {
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return c.NewRuntime(cfg)
}

// NewRuntime wires clients, the outage listener and the services from cfg.
func (c *Command) NewRuntime(cfg *config.Config) (*Runtime, error) {
	logger := c.Log
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	rc := c.RenderContext
	if rc == nil {
		rc = outage.NewTerminalContext(cfg.Outage.Headless)
	}

	var redirector apiclient.AuthRedirector = &apiclient.LogRedirector{Logger: logger}
	if rc.Interactive() {
		redirector = &apiclient.BrowserRedirector{Logger: logger}
	}

	client, err := newClient(cfg.API, "api", logger, redirector)
	if err != nil {
		return nil, err
	}
	legacy, err := newClient(cfg.LegacyAPI, "legacy_api", logger.Named("legacy"), redirector)
	if err != nil {
		return nil, err
	}

	registry, err := backends.NewRegistry(cfg.Backends, logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing notification backends: %w", err)
	}

	if rc.Interactive() {
		if _, ok := registry.GetBackend("console"); !ok && c.UI != nil {
			registry.Add(backends.NewConsoleBackend(c.UI.Error))
		}
	}

	listener := outage.NewListener(registry, rc, logger)
	listener.Message = cfg.Outage.Message
	listener.DispatchTimeout = cfg.Outage.DispatchTimeoutDuration()
	listener.Attach(client, legacy)

	user1, user2 := cfg.Comparison.FallbackPair()
	annotations := repository.NewAnnotationRepository(client,
		repository.WithLogger(logger),
		repository.WithFallbackUsers(user1, user2),
	)

	logger.Debug("runtime initialized",
		"api", client.BaseURL(),
		"legacy_api", legacy.BaseURL(),
		"backends", registry.GetBackendNames(),
		"interactive", rc.Interactive(),
	)

	return &Runtime{
		Config:        cfg,
		Client:        client,
		LegacyClient:  legacy,
		Outage:        listener,
		Notifications: registry,
		Annotations:   services.NewAnnotationService(annotations),
		Discrepancies: services.NewDiscrepancyService(repository.NewDiscrepancyRepository(client)),
	}, nil
}

func newClient(api *config.API, block string, logger hclog.Logger, redirector apiclient.AuthRedirector) (*apiclient.Client, error) {
	cfg, err := api.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error in %s block: %w", block, err)
	}
	client, err := apiclient.New(cfg,
		apiclient.WithLogger(logger),
		apiclient.WithRedirector(redirector),
	)
	if err != nil {
		return nil, fmt.Errorf("error in %s block: %w", block, err)
	}
	return client, nil
}

// Close releases notification backends.
func (r *Runtime) Close() {
	if r.Notifications != nil {
		r.Notifications.Close()
	}
}
