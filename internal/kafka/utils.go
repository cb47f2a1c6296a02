package kafka

import (
	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const correlationIDHeader = "correlation_id"

// getCorrelationID либо выделяет из заголовков сообщения correlation_id, либо создаёт его
func getCorrelationID(msg *sarama.ConsumerMessage) string {
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == correlationIDHeader {
			return string(header.Value)
		}
	}
	return uuid.New().String()
}

func newHeaders(correlationID string) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte(correlationIDHeader), Value: []byte(correlationID)},
	}
}
