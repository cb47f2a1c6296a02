package kafka

import (
	"fmt"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/models"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Producer публикует события об изменении маркеров
type Producer struct {
	producer     sarama.SyncProducer
	log          *logger.Logger
	markersTopic string
}

func newProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Compression = sarama.CompressionSnappy
	return cfg
}

// NewProducer создаёт синхронного продюсера
func NewProducer(cfg *config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info("Kafka producer created successfully")

	return NewProducerWith(producer, cfg.Topics.Markers, log), nil
}

// NewProducerWith оборачивает уже созданный sarama.SyncProducer
func NewProducerWith(producer sarama.SyncProducer, markersTopic string, log *logger.Logger) *Producer {
	return &Producer{producer: producer, log: log, markersTopic: markersTopic}
}

// Close закрывает продюсера
func (p *Producer) Close() error { return p.producer.Close() }

// PublishMarkerChanged публикует событие marker.changed
func (p *Producer) PublishMarkerChanged(markerID, action string) error {
	data, err := json.Marshal(models.MarkerChangedData{MarkerID: markerID, Action: action})
	if err != nil {
		return fmt.Errorf("failed to marshal marker event: %w", err)
	}

	event := models.Event{
		ID:        uuid.New(),
		Type:      models.EventTypeMarkerChanged,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:   p.markersTopic,
		Key:     sarama.StringEncoder(markerID),
		Value:   sarama.ByteEncoder(value),
		Headers: newHeaders(uuid.New().String()),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish marker event: %w", err)
	}

	p.log.WithFields(map[string]interface{}{
		"event_id":  event.ID,
		"marker_id": markerID,
		"action":    action,
		"partition": partition,
		"offset":    offset,
	}).Debug("Marker event published")
	return nil
}
