package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("restaurant not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetRestaurant(ctx context.Context, id int64) (Restaurant, error)
	ListMeals(ctx context.Context, restaurantID int64) ([]Meal, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int64) (Restaurant, error) {
	var rest Restaurant
	row := r.pool.QueryRow(ctx, `SELECT id, name FROM restaurants WHERE id=$1`, id)
	if err := row.Scan(&rest.ID, &rest.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Restaurant{}, ErrNotFound
		}
		return Restaurant{}, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return rest, nil
}

func (r *PostgresRepository) ListMeals(ctx context.Context, restaurantID int64) ([]Meal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, name, price, position
		FROM meals
		WHERE restaurant_id=$1
		ORDER BY position, id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list meals for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	var meals []Meal
	for rows.Next() {
		var m Meal
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Position); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meals for restaurant %d: %w", restaurantID, err)
	}
	return meals, nil
}

// UpsertRestaurant and UpsertMeal load menu data; they back the integration
// tests and local seeding.
func (r *PostgresRepository) UpsertRestaurant(ctx context.Context, rest Restaurant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO restaurants(id, name) VALUES($1, $2)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name
	`, rest.ID, rest.Name)
	return err
}

func (r *PostgresRepository) UpsertMeal(ctx context.Context, m Meal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO meals(id, restaurant_id, name, price, position) VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET restaurant_id=EXCLUDED.restaurant_id, name=EXCLUDED.name, price=EXCLUDED.price, position=EXCLUDED.position
	`, m.ID, m.RestaurantID, m.Name, m.Price, m.Position)
	return err
}
