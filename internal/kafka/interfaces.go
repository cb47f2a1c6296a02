package kafka

// ProducerInterface - часть Producer, нужная хендлерам
type ProducerInterface interface {
	PublishMarkerChanged(markerID, action string) error
}
