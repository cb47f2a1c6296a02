package kafka

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/metrics"
	"travel-map/internal/models"

	"github.com/IBM/sarama"
)

// TopicMetrics - структура для ведения метрик конкретного топика Kafka Consumer
type TopicMetrics struct {
	TotalProcessedEvents    atomic.Uint64
	Errors                  atomic.Uint64
	TotalProcessingDuration atomic.Uint64
}

// KafkaMetrics - структура ведения метрик Kafka Consumer
type KafkaMetrics struct {
	mux        sync.RWMutex
	statistics map[string]*TopicMetrics
	totalLag   atomic.Int64
}

func NewKafkaMetrics() *KafkaMetrics {
	return &KafkaMetrics{statistics: make(map[string]*TopicMetrics)}
}

// RecordEvent учитывает обработанное сообщение топика. duration - в миллисекундах
func (m *KafkaMetrics) RecordEvent(topic string, duration int64, hasError bool) {
	m.mux.Lock()
	topicMetrics, exists := m.statistics[topic]
	if !exists {
		topicMetrics = &TopicMetrics{}
		m.statistics[topic] = topicMetrics
	}
	m.mux.Unlock()

	topicMetrics.TotalProcessedEvents.Add(1)
	if duration > 0 {
		topicMetrics.TotalProcessingDuration.Add(uint64(duration))
	}
	if hasError {
		topicMetrics.Errors.Add(1)
	}
}

// SetLag записывает общий лаг consumer group
func (m *KafkaMetrics) SetLag(lag int64) {
	m.totalLag.Store(lag)
	metrics.KafkaConsumerLag.Set(float64(lag))
}

// GetStatistics возвращает статистику по топикам, отсортированную по имени топика
func (m *KafkaMetrics) GetStatistics() *models.EventStatisticsResponse {
	m.mux.RLock()
	defer m.mux.RUnlock()

	stats := &models.EventStatisticsResponse{
		TotalLag:   m.totalLag.Load(),
		Statistics: make([]models.TopicStatistics, 0, len(m.statistics)),
	}

	for topic, topicMetrics := range m.statistics {
		totalEvents := topicMetrics.TotalProcessedEvents.Load()
		totalDuration := topicMetrics.TotalProcessingDuration.Load()

		// Высчитываем среднее время обработки сообщения
		avg := "0 ms"
		if totalEvents > 0 {
			avg = fmt.Sprintf("%d ms", totalDuration/totalEvents)
		}

		stats.Statistics = append(stats.Statistics, models.TopicStatistics{
			Topic:                 topic,
			TotalProcessedEvents:  totalEvents,
			Errors:                topicMetrics.Errors.Load(),
			AvgProcessingDuration: avg,
		})
	}

	sort.Slice(stats.Statistics, func(i, j int) bool {
		return stats.Statistics[i].Topic < stats.Statistics[j].Topic
	})

	return stats
}

// groupOffsetLister - часть sarama.ClusterAdmin, нужная монитору лагов
type groupOffsetLister interface {
	ListConsumerGroupOffsets(group string, topicPartitions map[string][]int32) (*sarama.OffsetFetchResponse, error)
}

// newestOffsetGetter - часть sarama.Client, нужная монитору лагов
type newestOffsetGetter interface {
	GetOffset(topic string, partitionID int32, time int64) (int64, error)
}

// LagMonitor периодически считает лаг consumer group
type LagMonitor struct {
	client      newestOffsetGetter
	admin       groupOffsetLister
	closers     []func() error
	groupID     string
	log         *logger.Logger
	consumerLag int64
	interval    time.Duration
	done        chan struct{}
	stopOnce    sync.Once
}

func NewLagMonitor(cfg *config.KafkaConfig, log *logger.Logger) (*LagMonitor, error) {
	clientConfig := sarama.NewConfig()
	client, err := sarama.NewClient(cfg.Brokers, clientConfig)
	if err != nil {
		log.WithError(err).Error("Error occurred during creation of Kafka client for Lag Monitor")
		return nil, err
	}
	admin, err := sarama.NewClusterAdminFromClient(client)
	if err != nil {
		client.Close()
		log.WithError(err).Error("Error occurred during creation of Kafka admin client for Lag Monitor")
		return nil, err
	}

	m := newLagMonitor(client, admin, cfg.GroupID, cfg.ConsumerLag, time.Duration(cfg.MonitorInterval)*time.Minute, log)
	// admin создан поверх client и закрывает его сам
	m.closers = []func() error{admin.Close}
	return m, nil
}

func newLagMonitor(client newestOffsetGetter, admin groupOffsetLister, groupID string, threshold int64, interval time.Duration, log *logger.Logger) *LagMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &LagMonitor{
		client:      client,
		admin:       admin,
		groupID:     groupID,
		log:         log,
		consumerLag: threshold,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

// Start запускает монитора лагов
func (m *LagMonitor) Start(metrics *KafkaMetrics) {
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.RecordLag(metrics)
			case <-m.done:
				return
			}
		}
	}()
}

// Stop останавливает монитора лагов
func (m *LagMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
		for _, closeFn := range m.closers {
			if err := closeFn(); err != nil {
				m.log.WithError(err).Warn("Failed to close lag monitor client")
			}
		}
	})
}

// RecordLag определяет значение лага в системе и записывает в метрики
func (m *LagMonitor) RecordLag(metrics *KafkaMetrics) {
	// Получаем мапу, содержащую данные о каждом оффсете всех партиций всех топиков
	groupOffsets, err := m.admin.ListConsumerGroupOffsets(m.groupID, nil)
	if err != nil {
		m.log.WithError(err).Error("Failed to get consumer group offsets")
		return
	}

	totalLag := int64(0)
	for topic, partitions := range groupOffsets.Blocks {
		for partitionID, partitionBlock := range partitions {
			if partitionBlock == nil || partitionBlock.Offset == -1 {
				continue
			}

			newestOffset, err := m.client.GetOffset(topic, partitionID, sarama.OffsetNewest)
			if err != nil {
				m.log.WithError(err).Error("Failed to get partition offset")
				continue
			}

			totalLag += newestOffset - partitionBlock.Offset
		}
	}

	// Делаем алерт в логах, если общий лаг приложения превышает заданный порог
	if totalLag > m.consumerLag {
		m.log.WithFields(map[string]interface{}{
			"lag":      totalLag,
			"group_id": m.groupID,
		}).Warn("ALERT: High Consumer Lag detected in whole system")
	}
	metrics.SetLag(totalLag)
}
