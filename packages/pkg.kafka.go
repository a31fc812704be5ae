package packages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	kafkaBroker "github.com/segmentio/kafka-go"

	"github.com/angkomuhtar/simple-api-express/helpers"
)

type (
	IKafka interface {
		Publisher(topic string, key, value interface{}) error
		Close() error
	}

	kafka struct {
		writer *kafkaBroker.Writer
		pool   *ants.PoolWithFunc
		parser helpers.IParser
	}

	noopKafka struct{}
)

// NewKafka returns a publisher that writes through a goroutine pool of poolSize
// workers. With no brokers configured publishing is a no-op.
func NewKafka(brokers []string, poolSize int) (IKafka, error) {
	if len(brokers) == 0 {
		return &noopKafka{}, nil
	}

	writer := &kafkaBroker.Writer{
		Addr:                   kafkaBroker.TCP(brokers...),
		Compression:            kafkaBroker.Snappy,
		RequiredAcks:           kafkaBroker.RequireAll,
		AllowAutoTopicCreation: true,
		BatchSize:              100,
		BatchTimeout:           time.Duration(time.Millisecond * 50),
		MaxAttempts:            10,
		Balancer:               &kafkaBroker.Hash{},
		ErrorLogger: kafkaBroker.LoggerFunc(func(msg string, args ...interface{}) {
			Logrus("error", msg, args...)
		}),
	}

	pool, err := ants.NewPoolWithFunc(poolSize, func(data interface{}) {
		msg := data.(kafkaBroker.Message)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(time.Second*30))
		defer cancel()

		if err := writer.WriteMessages(ctx, msg); err != nil {
			Logrus("error", "Publish to topic %s is error: %v", msg.Topic, err)
		}
	},
		ants.WithNonblocking(true),
	)

	if err != nil {
		writer.Close()
		return nil, err
	}

	return &kafka{writer: writer, pool: pool, parser: helpers.NewParser()}, nil
}

func (h *kafka) Publisher(topic string, key, value interface{}) error {
	body, err := h.parser.Marshal(value)
	if err != nil {
		return err
	}

	msg := kafkaBroker.Message{Topic: topic, Key: []byte(uuid.NewString()), Value: body}
	if key != nil {
		msg.Key = []byte(h.parser.ToString(key))
	}

	return h.pool.Invoke(msg)
}

func (h *kafka) Close() error {
	if err := h.pool.ReleaseTimeout(time.Duration(time.Second * 10)); err != nil {
		Logrus("error", "Release publisher pool is error: %v", err)
	}

	return h.writer.Close()
}

func (h *noopKafka) Publisher(topic string, key, value interface{}) error {
	return nil
}

func (h *noopKafka) Close() error {
	return nil
}
