package kafka

import (
	"fmt"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"

	"github.com/IBM/sarama"
)

// DLQProducer представляет собой Kafka Producer, работающий с Dead Letter Queue
type DLQProducer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
	topic    string
}

// NewDLQProducer возвращает экземпляр объекта DLQProducer
func NewDLQProducer(cfg *config.KafkaConfig, log *logger.Logger) (*DLQProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig())
	if err != nil {
		log.WithError(err).Error("failed to create DLQ producer")
		return nil, fmt.Errorf("failed to create DLQ producer: %w", err)
	}

	log.Info("DLQ producer created successfully")

	return &DLQProducer{
		producer: producer,
		log:      log,
		topic:    cfg.Topics.DeadLetter,
	}, nil
}

// Close закрывает DLQProducer
func (p *DLQProducer) Close() error { return p.producer.Close() }

// PublishFailedEvent публикует неуспешно обработанное сообщение в DLQ
func (p *DLQProducer) PublishFailedEvent(msg *sarama.ConsumerMessage, originalErr, correlationID string) error {
	headers := newHeaders(correlationID)
	headers = append(headers,
		sarama.RecordHeader{Key: []byte("original_error"), Value: []byte(originalErr)},
		sarama.RecordHeader{Key: []byte("original_topic"), Value: []byte(msg.Topic)},
	)

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.ByteEncoder(msg.Key),
		Value:     sarama.ByteEncoder(msg.Value),
		Timestamp: time.Now(),
		Headers:   headers,
	}
	_, _, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.WithError(err).WithField("correlation_id", correlationID).Error("Failed to publish to DLQ")
	}
	return err
}
