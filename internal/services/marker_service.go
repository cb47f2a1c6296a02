package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"travel-map/internal/database"
	"travel-map/internal/logger"
	"travel-map/internal/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MarkerService - сервис для работы с точками интереса в PostgreSQL
type MarkerService struct {
	db  *database.DB
	log *logger.Logger
}

// NewMarkerService создаёт экземпляр объекта MarkerService
func NewMarkerService(db *database.DB, log *logger.Logger) *MarkerService {
	return &MarkerService{
		db:  db,
		log: log,
	}
}

const markerColumns = `id, title, coordinate, color, route, created_at`

// ListMarkers возвращает маркеры в порядке добавления. search фильтрует по названию без учёта регистра
func (s *MarkerService) ListMarkers(ctx context.Context, search string) ([]models.MarkerRecord, error) {
	query := `SELECT ` + markerColumns + ` FROM markers
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
		ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, strings.TrimSpace(search))
	if err != nil {
		s.log.WithError(err).Error("Failed to list markers")
		return nil, fmt.Errorf("failed to list markers: %w", err)
	}
	defer rows.Close()

	markers := make([]models.MarkerRecord, 0)
	for rows.Next() {
		record, err := scanMarker(rows)
		if err != nil {
			s.log.WithError(err).Error("Failed to scan markers")
			return nil, fmt.Errorf("failed to scan markers: %w", err)
		}
		markers = append(markers, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate markers: %w", err)
	}

	return markers, nil
}

// FetchMarkers возвращает полный снимок маркеров для экрана карты
func (s *MarkerService) FetchMarkers(ctx context.Context) ([]models.MarkerRecord, error) {
	return s.ListMarkers(ctx, "")
}

// GetMarker возвращает маркер по ID
func (s *MarkerService) GetMarker(ctx context.Context, id uuid.UUID) (*models.MarkerRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+markerColumns+` FROM markers WHERE id = $1`, id)
	record, err := scanMarker(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrMarkerNotFound
		}
		return nil, fmt.Errorf("failed to get marker: %w", err)
	}
	return record, nil
}

// CreateMarker создаёт новый маркер
func (s *MarkerService) CreateMarker(ctx context.Context, req *models.MarkerRequest) (*models.MarkerRecord, error) {
	coordinate, err := encodeCoordinate(req.Coordinate)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO markers(id, title, coordinate, color, route)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + markerColumns

	record, err := scanMarker(s.db.QueryRowContext(ctx, query, id, req.Title, coordinate, req.Color, req.Route))
	if err != nil {
		s.log.WithError(err).Error("Failed to create marker")
		return nil, fmt.Errorf("failed to create marker: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"id":    record.ID,
		"title": record.Title,
		"route": record.Route,
	}).Info("Marker created successfully")

	return record, nil
}

// ReplaceMarker заменяет все поля маркера. ID и позиция маркера в маршруте сохраняются
func (s *MarkerService) ReplaceMarker(ctx context.Context, id uuid.UUID, req *models.MarkerRequest) (*models.MarkerRecord, error) {
	coordinate, err := encodeCoordinate(req.Coordinate)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE markers SET title = $2, coordinate = $3, color = $4, route = $5
		WHERE id = $1
		RETURNING ` + markerColumns

	record, err := scanMarker(s.db.QueryRowContext(ctx, query, id, req.Title, coordinate, req.Color, req.Route))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrMarkerNotFound
		}
		s.log.WithError(err).Error("Failed to replace marker")
		return nil, fmt.Errorf("failed to replace marker: %w", err)
	}

	s.log.WithField("id", record.ID).Info("Marker replaced")
	return record, nil
}

// DeleteMarker удаляет маркер
func (s *MarkerService) DeleteMarker(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM markers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete marker: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrMarkerNotFound
	}

	s.log.WithField("id", id).Info("Marker deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMarker(row rowScanner) (*models.MarkerRecord, error) {
	var (
		record     models.MarkerRecord
		id         uuid.UUID
		coordinate []byte
	)
	if err := row.Scan(&id, &record.Title, &coordinate, &record.Color, &record.Route, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.ID = id.String()
	record.Coordinate = decodeCoordinate(coordinate)
	return &record, nil
}

func encodeCoordinate(raw models.RawCoordinate) ([]byte, error) {
	c, err := raw.Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidCoordinates, err)
	}
	return json.Marshal(c)
}

// decodeCoordinate читает координату из JSONB. Старые записи могут содержать строки или мусор,
// поэтому значения остаются нетипизированными, а проверка происходит при построении карты
func decodeCoordinate(data []byte) *models.RawCoordinate {
	if len(data) == 0 {
		return nil
	}
	var raw models.RawCoordinate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return &raw
}
