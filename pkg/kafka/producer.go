package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewProducer when no broker address is configured.
var ErrNoBrokers = errors.New("kafka: brokers are required")

// Producer publishes JSON messages through a kafka-go writer.
type Producer struct {
	writer *kafka.Writer
	comp   string
}

// NewProducer creates a new Kafka producer. No connection is made until the first write.
func NewProducer(opts ...ProducerOption) (*Producer, error) {
	cfg := defaultProducerConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	var balancer kafka.Balancer = &kafka.LeastBytes{}
	if cfg.HashByKey {
		balancer = &kafka.Hash{}
	}
	codec, name := parseCompression(cfg.Compression)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     balancer,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:  codec,
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		BatchSize:    cfg.BatchSize,
		BatchBytes:   int64(cfg.BatchBytes),
		BatchTimeout: cfg.BatchTimeout,
		Async:        cfg.Async,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	if cfg.Async {
		// async writes report their outcome here instead of from WriteMessages
		writer.Completion = func(msgs []kafka.Message, err error) {
			for _, m := range msgs {
				observe(m.Topic, name, int64(len(m.Value)), 0, err)
			}
		}
	}

	initMetrics()
	return &Producer{writer: writer, comp: name}, nil
}

// Publish sends one message. Values other than []byte and string are JSON encoded.
func (p *Producer) Publish(ctx context.Context, topic string, key []byte, value interface{}) error {
	v, err := encode(value)
	if err != nil {
		return err
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: v,
		Time:  start,
	})
	if !p.writer.Async || err != nil {
		observe(topic, p.comp, int64(len(v)), time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("kafka publish %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return b, nil
}

func parseCompression(s string) (kafka.Compression, string) {
	switch s {
	case "snappy":
		return kafka.Snappy, s
	case "lz4":
		return kafka.Lz4, s
	case "zstd":
		return kafka.Zstd, s
	default:
		return kafka.Gzip, "gzip"
	}
}

var (
	metricsOnce      sync.Once
	producedTotal    *prometheus.CounterVec
	producedBytes    *prometheus.CounterVec
	publishLatencies *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		producedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lipe_kafka_producer_messages_total",
			Help: "Messages handed to Kafka, by outcome",
		}, []string{"topic", "compression", "result"})
		producedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lipe_kafka_producer_bytes_total",
			Help: "Payload bytes published",
		}, []string{"topic", "compression"})
		publishLatencies = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lipe_kafka_producer_publish_seconds",
			Help:    "Synchronous publish latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"})
	})
}

func observe(topic, comp string, bytes int64, dur time.Duration, err error) {
	if producedTotal == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	producedTotal.WithLabelValues(topic, comp, result).Inc()
	producedBytes.WithLabelValues(topic, comp).Add(float64(bytes))
	if dur > 0 {
		publishLatencies.WithLabelValues(topic).Observe(dur.Seconds())
	}
}
