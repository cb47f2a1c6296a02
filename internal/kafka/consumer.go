package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/models"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventHandler представляет обработчик событий
type EventHandler func(ctx context.Context, event *models.Event) error

// DeadLetterPublisher - получатель сообщений, которые не удалось обработать
type DeadLetterPublisher interface {
	PublishFailedEvent(msg *sarama.ConsumerMessage, originalErr, correlationID string) error
}

// Consumer представляет Kafka consumer событий геолокации и маркеров
type Consumer struct {
	consumer    sarama.ConsumerGroup
	log         *logger.Logger
	handlers    map[models.EventType]EventHandler
	topics      []string
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	maxRetries  int
	dlqProducer DeadLetterPublisher
	metrics     *KafkaMetrics
}

// NewConsumer создает новый Kafka consumer
func NewConsumer(cfg *config.KafkaConfig, log *logger.Logger, dlqProducer DeadLetterPublisher, metrics *KafkaMetrics) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	// Нужна только свежая геолокация, поэтому при первом подключении читаем с конца
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Group.Session.Timeout = 10 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second

	consumer, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	log.Info("Kafka consumer created successfully")

	c := newConsumer(log, []string{cfg.Topics.Locations, cfg.Topics.Markers}, dlqProducer, metrics)
	c.consumer = consumer
	return c, nil
}

func newConsumer(log *logger.Logger, topics []string, dlqProducer DeadLetterPublisher, metrics *KafkaMetrics) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Consumer{
		log:         log,
		handlers:    make(map[models.EventType]EventHandler),
		topics:      topics,
		ctx:         ctx,
		cancel:      cancel,
		maxRetries:  3,
		dlqProducer: dlqProducer,
		metrics:     metrics,
	}
}

// RegisterHandler регистрирует обработчик для определенного типа события
func (c *Consumer) RegisterHandler(eventType models.EventType, handler EventHandler) {
	c.handlers[eventType] = handler
	c.log.WithField("event_type", eventType).Info("Event handler registered")
}

// Start запускает consumer
func (c *Consumer) Start() error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				if err := c.consumer.Consume(c.ctx, c.topics, c); err != nil {
					c.log.WithError(err).Error("Error consuming messages")
				}
			}
		}
	}()

	c.log.Info("Kafka consumer started")
	return nil
}

// Stop останавливает consumer
func (c *Consumer) Stop() error {
	c.cancel()
	c.wg.Wait()
	return c.consumer.Close()
}

// Setup реализует интерфейс sarama.ConsumerGroupHandler
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup реализует интерфейс sarama.ConsumerGroupHandler
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim реализует интерфейс sarama.ConsumerGroupHandler
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := c.handleMessage(message); err != nil {
				return err
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage обрабатывает сообщение, обновляет метрики и при неудаче отправляет его в DLQ
func (c *Consumer) handleMessage(message *sarama.ConsumerMessage) error {
	correlationID := getCorrelationID(message)

	start := time.Now()
	err := c.processMessageWithRetries(message, correlationID)
	if c.metrics != nil {
		c.metrics.RecordEvent(message.Topic, time.Since(start).Milliseconds(), err != nil)
	}

	if err == nil {
		return nil
	}

	c.log.WithFields(map[string]interface{}{
		"correlation_id": correlationID,
		"error":          err,
		"topic":          message.Topic,
		"partition":      message.Partition,
		"offset":         message.Offset,
	}).Error("Failed to process message")

	if c.dlqProducer == nil {
		return nil
	}
	return c.dlqProducer.PublishFailedEvent(message, err.Error(), correlationID)
}

// processMessageWithRetries обрабатывает полученное сообщение, делая до c.maxRetries попыток
func (c *Consumer) processMessageWithRetries(message *sarama.ConsumerMessage, correlationID string) error {
	var event models.Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	c.log.WithFields(map[string]interface{}{
		"correlation_id": correlationID,
		"event_type":     event.Type,
		"event_id":       event.ID,
		"topic":          message.Topic,
	}).Debug("Processing event...")

	// Находим обработчик для данного типа события
	handler, exists := c.handlers[event.Type]
	if !exists {
		c.log.WithFields(map[string]interface{}{
			"correlation_id": correlationID,
			"event_type":     event.Type,
		}).Warn("No handler registered for event type")
		return fmt.Errorf("no handler registered for event type %s", event.Type)
	}

	var lastErr error
	for i := 1; i <= c.maxRetries; i++ {
		if lastErr = handler(c.ctx, &event); lastErr == nil {
			c.log.WithField("event_id", event.ID.String()).Debug("Message was successfully processed")
			return nil
		}
		c.log.WithFields(map[string]interface{}{
			"correlation_id": correlationID,
			"event_id":       event.ID.String(),
			"attempt":        i,
		}).Warn("Failed to process message")
	}

	return fmt.Errorf("event %s failed after %d attempts: %w", event.ID, c.maxRetries, lastErr)
}
