package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/dberrors"
)

// Transport error types
var (
	ErrRouteNotFound      = ErrNotFound
	ErrRouteAlreadyExists = errors.New("transport route with this vehicle number already exists")
)

// TransportRepository handles transport route database operations
type TransportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTransportRepository creates a new TransportRepository
func NewTransportRepository(db *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const routeColumns = "id, name, vehicle_no, stops, fare, status"

func scanRoute(row pgx.Row) (*models.TransportRoute, error) {
	route := &models.TransportRoute{}
	err := row.Scan(&route.ID, &route.Name, &route.VehicleNo, &route.Stops, &route.Fare, &route.Status)
	if err != nil {
		return nil, err
	}
	return route, nil
}

// Create creates a new transport route
func (r *TransportRepository) Create(ctx context.Context, route *models.TransportRoute) error {
	sql, args, err := r.sb.Insert("transport_routes").
		Columns("name", "vehicle_no", "stops", "fare", "status").
		Values(route.Name, route.VehicleNo, route.Stops, route.Fare, route.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create route query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&route.ID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrRouteAlreadyExists
		}
		return fmt.Errorf("error creating transport route: %w", err)
	}
	return nil
}

// GetByID retrieves a transport route by ID
func (r *TransportRepository) GetByID(ctx context.Context, id int64) (*models.TransportRoute, error) {
	sql, args, err := r.sb.Select(routeColumns).
		From("transport_routes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get route query: %w", err)
	}

	route, err := scanRoute(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("error getting transport route by ID: %w", err)
	}
	return route, nil
}

// List retrieves transport routes, optionally filtered by status.
func (r *TransportRepository) List(ctx context.Context, status models.EntityStatus) ([]*models.TransportRoute, error) {
	builder := r.sb.Select(routeColumns).
		From("transport_routes").
		OrderBy("name ASC")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list routes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transport routes: %w", err)
	}
	defer rows.Close()

	routes := []*models.TransportRoute{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning route row: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", err)
	}
	return routes, nil
}

// Update updates an existing transport route
func (r *TransportRepository) Update(ctx context.Context, route *models.TransportRoute) error {
	sql, args, err := r.sb.Update("transport_routes").
		SetMap(map[string]interface{}{
			"name":       route.Name,
			"vehicle_no": route.VehicleNo,
			"stops":      route.Stops,
			"fare":       route.Fare,
		}).
		Where(squirrel.Eq{"id": route.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update route query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrRouteAlreadyExists
		}
		return fmt.Errorf("error updating transport route: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

// UpdateStatus sets the lifecycle status in a single statement.
func (r *TransportRepository) UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error {
	sql, args, err := r.sb.Update("transport_routes").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update route status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating route status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

// Delete deletes a transport route by ID.
func (r *TransportRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("transport_routes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete route query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting transport route: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}
