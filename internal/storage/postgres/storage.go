package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
)

// DB is the subset of pgxpool.Pool the storage uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. Aggregates are
// stored as JSONB documents with the columns the queries filter on extracted
// alongside.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type restaurantRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type discountRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Restaurants() repository.RestaurantRepository {
	return &restaurantRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Discounts() repository.DiscountRepository {
	return &discountRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            reminder_opt_in BOOLEAN NOT NULL DEFAULT TRUE,
            doc JSONB NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS restaurants (
            id TEXT PRIMARY KEY,
            doc JSONB NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL,
            restaurant_id TEXT NOT NULL,
            company_id TEXT NOT NULL,
            status TEXT NOT NULL,
            delivery_date BIGINT NOT NULL,
            pending_order_id TEXT,
            doc JSONB NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS discount_codes (
            id TEXT PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            redeemability TEXT NOT NULL,
            total_redeem INT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, status, delivery_date)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_slot ON orders(restaurant_id, company_id, delivery_date) WHERE status = 'PROCESSING'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	out := *customer
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	payload, err := json.Marshal(customerToDoc(&out))
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO customers (id, email, reminder_opt_in, doc) VALUES ($1, $2, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, out.ID, out.Email, out.OrderReminderOptIn, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const query = `SELECT doc FROM customers WHERE email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	const query = `SELECT doc FROM customers WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *customerRepository) scanOne(ctx context.Context, query string, arg any) (*model.Customer, error) {
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var doc customerDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return doc.toModel(), nil
}

func (r *customerRepository) ListReminderSubscribers(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT doc FROM customers WHERE reminder_opt_in`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var doc customerDoc
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("decode customer: %w", err)
		}
		result = append(result, *doc.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- RestaurantRepository implementation ---

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	const query = `SELECT doc FROM restaurants WHERE id=$1`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var doc restaurantDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode restaurant: %w", err)
	}
	return doc.toModel(), nil
}

func (r *restaurantRepository) UpcomingByCompany(ctx context.Context, companyID string, fromMS int64, activeOnly bool) ([]model.Restaurant, error) {
	const query = `SELECT doc FROM restaurants
                   WHERE EXISTS (
                       SELECT 1 FROM jsonb_array_elements(doc->'schedules') s
                       WHERE s->>'companyId' = $1
                         AND (s->>'date')::bigint >= $2
                         AND (NOT $3 OR s->>'status' = 'ACTIVE')
                   )`
	return r.list(ctx, query, companyID, fromMS, activeOnly)
}

func (r *restaurantRepository) ListScheduledBetween(ctx context.Context, fromMS, toMS int64) ([]model.Restaurant, error) {
	const query = `SELECT doc FROM restaurants
                   WHERE EXISTS (
                       SELECT 1 FROM jsonb_array_elements(doc->'schedules') s
                       WHERE s->>'status' = 'ACTIVE'
                         AND (s->>'date')::bigint BETWEEN $1 AND $2
                   )`
	return r.list(ctx, query, fromMS, toMS)
}

func (r *restaurantRepository) list(ctx context.Context, query string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Restaurant
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var doc restaurantDoc
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("decode restaurant: %w", err)
		}
		result = append(result, *doc.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetScheduleStatus rewrites the whole aggregate under a row lock. Schedule
// entries have no identity of their own, so the mutation happens in Go, not
// in SQL.
func (r *restaurantRepository) SetScheduleStatus(ctx context.Context, restaurantID string, dateMS int64, companyID string, status model.ScheduleStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT doc FROM restaurants WHERE id=$1 FOR UPDATE`
		var payload []byte
		if err := tx.QueryRow(ctx, selectQuery, restaurantID).Scan(&payload); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		var doc restaurantDoc
		if err := json.Unmarshal(payload, &doc); err != nil {
			return fmt.Errorf("decode restaurant: %w", err)
		}

		var touched bool
		for i := range doc.Schedules {
			s := &doc.Schedules[i]
			if s.DateMS == dateMS && s.CompanyID == companyID {
				s.Status = string(status)
				touched = true
			}
		}
		if !touched {
			return domainErrors.ErrNotFound
		}

		updated, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE restaurants SET doc=$1 WHERE id=$2`, updated, restaurantID)
		return err
	})
}

// --- OrderRepository implementation ---

const orderInsert = `INSERT INTO orders
    (id, customer_id, restaurant_id, company_id, status, delivery_date, pending_order_id, doc)
    VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`

func (r *orderRepository) InsertMany(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	result := make([]model.Order, len(orders))
	copy(result, orders)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for i := range result {
			o := &result[i]
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			payload, err := json.Marshal(orderToDoc(o))
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, orderInsert,
				o.ID, o.Customer.ID, o.Restaurant.ID, o.Company.ID,
				string(o.Status), o.Delivery.DateMS, o.PendingOrderID, payload)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT doc FROM orders WHERE id=$1`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var doc orderDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order := doc.toModel()
	return &order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error) {
	query := `SELECT doc FROM orders WHERE customer_id=$1 AND status=$2 ` + orderClause(limit, ascending)
	return r.list(ctx, query, customerID, string(status))
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error) {
	query := `SELECT doc FROM orders WHERE status=$1 ` + orderClause(limit, ascending)
	return r.list(ctx, query, string(status))
}

func orderClause(limit int, ascending bool) string {
	clause := "ORDER BY delivery_date DESC"
	if ascending {
		clause = "ORDER BY delivery_date ASC"
	}
	if limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", limit)
	}
	return clause
}

func (r *orderRepository) ActiveSince(ctx context.Context, customerID string, fromMS int64) ([]model.Order, error) {
	const query = `SELECT doc FROM orders
                   WHERE customer_id=$1
                     AND delivery_date >= $2
                     AND status NOT IN ('PENDING', 'ARCHIVED', 'CANCELLED')`
	return r.list(ctx, query, customerID, fromMS)
}

func (r *orderRepository) ActiveForSlots(ctx context.Context, restaurantIDs, companyIDs []string, dates []int64) ([]model.Order, error) {
	const query = `SELECT doc FROM orders
                   WHERE status='PROCESSING'
                     AND restaurant_id = ANY($1)
                     AND company_id = ANY($2)
                     AND delivery_date = ANY($3)`
	return r.list(ctx, query, restaurantIDs, companyIDs, dates)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders
                   SET status=$1, doc = jsonb_set(doc, '{status}', to_jsonb($1::text))
                   WHERE id=$2 AND status=$3
                   RETURNING doc`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, string(to), id, string(from)).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var doc orderDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order := doc.toModel()
	return &order, nil
}

func (r *orderRepository) MarkDelivered(ctx context.Context, ids []string) ([]model.Order, error) {
	const query = `UPDATE orders
                   SET status='DELIVERED', doc = jsonb_set(doc, '{status}', '"DELIVERED"')
                   WHERE id = ANY($1) AND status='PROCESSING'
                   RETURNING doc`
	return r.list(ctx, query, ids)
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	payload, err := json.Marshal(orderToDoc(order))
	if err != nil {
		return err
	}
	const query = `UPDATE orders
                   SET status=$1, pending_order_id=NULLIF($2, ''), doc=$3
                   WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, string(order.Status), order.PendingOrderID, payload, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) CustomerIDsWithDeliveriesBetween(ctx context.Context, fromMS, toMS int64) ([]string, error) {
	const query = `SELECT DISTINCT customer_id FROM orders
                   WHERE delivery_date >= $1 AND delivery_date < $2
                     AND status NOT IN ('PENDING', 'ARCHIVED', 'CANCELLED')`
	rows, err := r.storage.pool.Query(ctx, query, fromMS, toMS)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var doc orderDoc
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- DiscountRepository implementation ---

func (r *discountRepository) GetByID(ctx context.Context, id string) (*model.DiscountCode, error) {
	const query = `SELECT id, code, value, redeemability, total_redeem FROM discount_codes WHERE id=$1`
	var code model.DiscountCode
	var redeemability string
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&code.ID, &code.Code, &code.Value, &redeemability, &code.TotalRedeem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	code.Redeemability = model.Redeemability(redeemability)
	return &code, nil
}

func (r *discountRepository) IncrementRedemptions(ctx context.Context, id string) error {
	const query = `UPDATE discount_codes SET total_redeem = total_redeem + 1 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
