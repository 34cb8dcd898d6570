// Package kafka builds the franz-go client used by the audit publisher.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"rxintake/internal/platform/config"
)

// TopicCreator is the part of the admin client used on startup.
type TopicCreator interface {
	CreateTopic(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topic string) (kadm.CreateTopicResponse, error)
}

// New returns a producer client for the configured brokers, or nil when Kafka
// is not configured. The audit topic is created if the cluster lacks it.
func New(ctx context.Context, cfg config.Kafka) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.AuditTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), cfg); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// EnsureTopic creates the audit topic. A topic that already exists is fine.
func EnsureTopic(ctx context.Context, admin TopicCreator, cfg config.Kafka) error {
	resp, err := admin.CreateTopic(ctx, cfg.AuditPartitions, cfg.AuditReplication, nil, cfg.AuditTopic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("ensure kafka topic %s: %w", cfg.AuditTopic, err)
	}
	return nil
}
