package models

// CacheMetricsResponse - статистика кеша геокодера и маршрутов
type CacheMetricsResponse struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	MissRate  float64 `json:"miss_rate"`
	CacheSize int64   `json:"cache_size"`
}

// TopicStatistics - статистика обработки событий одного топика
type TopicStatistics struct {
	Topic                 string `json:"topic"`
	TotalProcessedEvents  uint64 `json:"total_processed_events"`
	Errors                uint64 `json:"errors"`
	AvgProcessingDuration string `json:"avg_processing_duration"`
}

// EventStatisticsResponse - общая статистика событий геолокации и маркеров
type EventStatisticsResponse struct {
	TotalLag              int64             `json:"total_lag"`
	Statistics            []TopicStatistics `json:"statistics"`
	MapSessions           int               `json:"map_sessions"`
	StaleResponsesDropped uint64            `json:"stale_responses_dropped"`
}
