package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/annotation-forge/annotator/pkg/kafka"
	"github.com/annotation-forge/annotator/pkg/notifications"
	"github.com/annotation-forge/annotator/pkg/notifications/backends"
)

// NotifierConfig holds the relay configuration from HCL
type NotifierConfig struct {
	Brokers       []string `hcl:"brokers,optional"`
	Topic         string   `hcl:"topic,optional"`
	ConsumerGroup string   `hcl:"consumer_group,optional"`

	// DLQTopic receives notifications no backend could deliver. With
	// disable_dlq a failed record blocks its partition and is retried until
	// it is delivered.
	DLQTopic   string `hcl:"dlq_topic,optional"`
	DisableDLQ bool   `hcl:"disable_dlq,optional"`

	// Backends the relayed notifications are delivered to. A kafka block is
	// rejected since it would feed the topic back into itself.
	Backends *backends.Config `hcl:"backends,block"`
}

// The notifier relays notifications that annotator clients published to
// Kafka (the kafka backend) to the locally configured backends, so a
// single process owns push credentials for a whole team.
func main() {
	configFile := flag.String("config", "", "Path to HCL configuration file")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{Name: "annotator-notifier"})

	if *configFile == "" {
		logger.Error("missing required -config flag")
		os.Exit(1)
	}

	var cfg NotifierConfig
	if err := hclsimple.DecodeFile(*configFile, nil, &cfg); err != nil {
		logger.Error("failed to load configuration", "path", *configFile, "error", err)
		os.Exit(1)
	}

	// Environment overrides configuration, then defaults apply
	cfg.Brokers = kafka.GetBrokers(cfg.Brokers)
	cfg.Topic = kafka.GetTopic(cfg.Topic)
	cfg.ConsumerGroup = kafka.GetConsumerGroup(cfg.ConsumerGroup)
	if cfg.Backends != nil && cfg.Backends.Kafka != nil && cfg.Backends.Kafka.Enabled {
		logger.Error("kafka backend cannot be used by the notifier")
		os.Exit(1)
	}

	registry, err := backends.NewRegistry(cfg.Backends, logger)
	if err != nil {
		logger.Error("failed to initialize backend registry", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	var dlq deadLetterer
	if !cfg.DisableDLQ {
		publisher, err := notifications.NewDLQPublisher(notifications.DLQPublisherConfig{
			Brokers: cfg.Brokers,
			Topic:   cfg.DLQTopic,
		})
		if err != nil {
			logger.Error("failed to create DLQ publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		dlq = publisher
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.ConsumerGroup),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		logger.Error("failed to create consumer", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting notification relay",
		"backends", registry.GetBackendNames(),
		"topic", cfg.Topic,
		"group", cfg.ConsumerGroup,
	)

	// In-flight batches finish even after a shutdown signal.
	workCtx := context.WithoutCancel(ctx)

	retryDelay := backoff.NewExponentialBackOff()
	retryDelay.MaxElapsedTime = 0

	for {
		fetches := client.PollFetches(ctx)
		if ctx.Err() != nil {
			break
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, fe := range errs {
				logger.Warn("fetch error", "topic", fe.Topic, "partition", fe.Partition, "error", fe.Err)
			}
			continue
		}

		var (
			mu      sync.Mutex
			wg      sync.WaitGroup
			commits []*kgo.Record
			rewinds = make(map[string]map[int32]kgo.EpochOffset)
		)
		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			if len(p.Records) == 0 {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				progress := relayPartition(workCtx, registry, dlq, p.Records, logger)

				mu.Lock()
				defer mu.Unlock()
				if progress.Done != nil {
					commits = append(commits, progress.Done)
				}
				if progress.Retry != nil {
					if rewinds[p.Topic] == nil {
						rewinds[p.Topic] = make(map[int32]kgo.EpochOffset)
					}
					rewinds[p.Topic][p.Partition] = kgo.EpochOffset{
						Epoch:  progress.Retry.LeaderEpoch,
						Offset: progress.Retry.Offset,
					}
				}
			}()
		})
		wg.Wait()

		if len(commits) > 0 {
			if err := client.CommitRecords(workCtx, commits...); err != nil {
				logger.Warn("failed to commit offsets", "error", err)
			}
		}

		if len(rewinds) == 0 {
			retryDelay.Reset()
			continue
		}

		// Later records of a blocked partition were not relayed; consume
		// again from the first failed record.
		client.SetOffsets(rewinds)
		wait := retryDelay.NextBackOff()
		logger.Warn("retrying undelivered notifications", "partitions", len(rewinds), "delay", wait)
		select {
		case <-ctx.Done():
		case <-time.After(wait):
		}
	}

	logger.Info("shutdown signal received, notification relay stopped")
}

// deadLetterer is satisfied by *notifications.DLQPublisher.
type deadLetterer interface {
	Publish(ctx context.Context, n *notifications.Notification, failureReason string) error
}

// partitionProgress reports how far a partition's batch was relayed.
type partitionProgress struct {
	// Done is the last record that was delivered or dead-lettered, so its
	// offset can be committed.
	Done *kgo.Record

	// Retry is the first record that was neither, and must be consumed
	// again. Records after it were left untouched.
	Retry *kgo.Record
}

// relayPartition relays one partition's records in offset order and stops at
// the first record it can neither deliver nor dead-letter. dlq may be nil.
func relayPartition(ctx context.Context, dispatcher notifications.Dispatcher, dlq deadLetterer, records []*kgo.Record, logger hclog.Logger) partitionProgress {
	var progress partitionProgress
	for _, rec := range records {
		if relayErr := relay(ctx, dispatcher, rec); relayErr != nil {
			logger.Error("failed to relay notification", "partition", rec.Partition, "offset", rec.Offset, "error", relayErr)
			if dlq == nil {
				progress.Retry = rec
				return progress
			}
			if err := deadLetter(ctx, dlq, rec, relayErr); err != nil {
				logger.Error("failed to publish to DLQ", "partition", rec.Partition, "offset", rec.Offset, "error", err)
				progress.Retry = rec
				return progress
			}
		}
		progress.Done = rec
	}
	return progress
}

// deadLetter moves a record that could not be relayed to the DLQ. Records
// that are not even notifications are wrapped so they are not lost.
func deadLetter(ctx context.Context, dlq deadLetterer, record *kgo.Record, cause error) error {
	var n notifications.Notification
	if err := json.Unmarshal(record.Value, &n); err != nil || n.ID == "" {
		n = notifications.Notification{
			ID:        fmt.Sprintf("%s/%d/%d", record.Topic, record.Partition, record.Offset),
			Type:      notifications.NotificationTypeError,
			Message:   string(record.Value),
			Source:    "notifier",
			Timestamp: record.Timestamp,
		}
	}
	return dlq.Publish(ctx, &n, cause.Error())
}

func relay(ctx context.Context, dispatcher notifications.Dispatcher, record *kgo.Record) error {
	var n notifications.Notification
	if err := json.Unmarshal(record.Value, &n); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return dispatcher.Dispatch(ctx, &n)
}
