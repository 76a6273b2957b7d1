package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/annotation-forge/annotator/pkg/kafka"
	"github.com/annotation-forge/annotator/pkg/notifications"
)

// Config holds backend configuration from HCL
type Config struct {
	// Log backend (enabled by default when no block is present)
	Log *LogConfig `hcl:"log,block"`

	// Ntfy backend configuration
	Ntfy *NtfyConfig `hcl:"ntfy,block"`

	// Kafka backend configuration
	Kafka *KafkaConfig `hcl:"kafka,block"`
}

// LogConfig configures the log backend
type LogConfig struct {
	Enabled bool `hcl:"enabled,optional"`
}

// NtfyConfig configures the ntfy backend
type NtfyConfig struct {
	Enabled bool `hcl:"enabled,optional"`

	ServerURL  string `hcl:"server_url,optional"`
	Topic      string `hcl:"topic,optional"`
	Timeout    string `hcl:"timeout,optional"`
	MaxRetries int    `hcl:"max_retries,optional"`
}

// KafkaConfig configures the kafka backend
type KafkaConfig struct {
	Enabled bool `hcl:"enabled,optional"`

	Brokers []string `hcl:"brokers,optional"`
	Topic   string   `hcl:"topic,optional"`
}

// Registry manages available notification backends and fans notifications
// out to all of them.
type Registry struct {
	backends map[string]Backend
	order    []string
	logger   hclog.Logger
}

var _ notifications.Dispatcher = (*Registry)(nil)

// NewRegistry creates a new backend registry from configuration
func NewRegistry(cfg *Config, logger hclog.Logger) (*Registry, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	registry := &Registry{
		backends: make(map[string]Backend),
		logger:   logger.Named("notifications"),
	}

	if cfg == nil || cfg.Log == nil {
		cfg = withDefaultLog(cfg)
	}

	// Initialize log backend
	if cfg.Log.Enabled {
		registry.Add(NewLogBackend(logger))
		registry.logger.Debug("initialized log backend")
	}

	// Initialize ntfy backend
	if cfg.Ntfy != nil && cfg.Ntfy.Enabled {
		if cfg.Ntfy.Topic == "" {
			return nil, fmt.Errorf("ntfy backend: topic is required")
		}
		var timeout time.Duration
		if cfg.Ntfy.Timeout != "" {
			d, err := time.ParseDuration(cfg.Ntfy.Timeout)
			if err != nil {
				return nil, fmt.Errorf("ntfy backend: invalid timeout: %w", err)
			}
			timeout = d
		}
		registry.Add(NewNtfyBackend(NtfyBackendConfig{
			ServerURL:  cfg.Ntfy.ServerURL,
			Topic:      cfg.Ntfy.Topic,
			Timeout:    timeout,
			MaxRetries: cfg.Ntfy.MaxRetries,
		}))
		registry.logger.Debug("initialized ntfy backend",
			"server", cfg.Ntfy.ServerURL, "topic", cfg.Ntfy.Topic)
	}

	// Initialize kafka backend
	if cfg.Kafka != nil && cfg.Kafka.Enabled {
		brokers := kafka.GetBrokers(cfg.Kafka.Brokers)
		topic := kafka.GetTopic(cfg.Kafka.Topic)
		backend, err := NewKafkaBackend(KafkaBackendConfig{
			Brokers: brokers,
			Topic:   topic,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka backend: %w", err)
		}
		registry.Add(backend)
		registry.logger.Debug("initialized kafka backend",
			"brokers", brokers, "topic", topic)
	}

	return registry, nil
}

func withDefaultLog(cfg *Config) *Config {
	out := Config{}
	if cfg != nil {
		out = *cfg
	}
	out.Log = &LogConfig{Enabled: true}
	return &out
}

// Add registers a backend, replacing any backend with the same name
func (r *Registry) Add(backend Backend) {
	if _, ok := r.backends[backend.Name()]; !ok {
		r.order = append(r.order, backend.Name())
	}
	r.backends[backend.Name()] = backend
}

// GetBackend returns a backend by name
func (r *Registry) GetBackend(name string) (Backend, bool) {
	backend, ok := r.backends[name]
	return backend, ok
}

// GetBackendNames returns the names of all registered backends in
// registration order
func (r *Registry) GetBackendNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Dispatch hands the notification to every backend. A failing backend does
// not stop the others; all failures are returned together.
func (r *Registry) Dispatch(ctx context.Context, n *notifications.Notification) error {
	var result *multierror.Error
	for _, name := range r.order {
		if err := r.backends[name].Handle(ctx, n); err != nil {
			r.logger.Warn("notification backend failed", "backend", name, "id", n.ID, "error", err)
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Close releases backends holding connections
func (r *Registry) Close() {
	for _, backend := range r.backends {
		if kb, ok := backend.(*KafkaBackend); ok {
			kb.Close()
		}
	}
}
