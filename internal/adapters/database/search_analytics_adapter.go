package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

var searchEventColumns = []interface{}{
	"id", "query", "city", "specialty", "result_count", "latency_ms",
	"session_id", "created_at",
}

// SearchAnalyticsAdapter persists committed searches for the admin dashboard
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent records a committed search
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("search_events").Rows(goqu.Record{
		"id":           event.ID,
		"query":        event.Query,
		"city":         event.City,
		"specialty":    event.Specialty,
		"result_count": event.ResultCount,
		"latency_ms":   event.LatencyMs,
		"session_id":   event.SessionID,
		"created_at":   event.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}

// GetZeroResultQueries returns recent searches that returned nothing. These
// feed the trending-terms curation workflow.
func (a *SearchAnalyticsAdapter) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := a.db.From("search_events").
		Select(searchEventColumns...).
		Where(goqu.Ex{"result_count": 0}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result queries", err)
	}
	defer rows.Close()

	var events []*entities.SearchEvent
	for rows.Next() {
		e := &entities.SearchEvent{}
		err := rows.Scan(
			&e.ID,
			&e.Query,
			&e.City,
			&e.Specialty,
			&e.ResultCount,
			&e.LatencyMs,
			&e.SessionID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search events", err)
	}
	return events, nil
}

// GetTopQueries returns the most frequent non-empty queries over the last 30
// days, most frequent first.
func (a *SearchAnalyticsAdapter) GetTopQueries(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	since := time.Now().AddDate(0, 0, -30)
	query, args, err := a.db.From("search_events").
		Select(goqu.I("query"), goqu.COUNT("*").As("searches")).
		Where(goqu.Ex{"created_at": goqu.Op{"gte": since}}, goqu.I("query").Neq("")).
		GroupBy(goqu.I("query")).
		Order(goqu.I("searches").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get top queries", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		var count int
		if err := rows.Scan(&q, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan top query", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate top queries", err)
	}
	return queries, nil
}
