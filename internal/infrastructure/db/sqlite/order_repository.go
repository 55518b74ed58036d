package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/validation"
)

type orderRow struct {
	ID          int64      `db:"id"`
	OrderedBy   int64      `db:"ordered_by"`
	Delivered   bool       `db:"delivered"`
	OrderedAt   time.Time  `db:"ordered_at"`
	DeliveredAt *time.Time `db:"delivered_at"`
}

type orderDetailRow struct {
	OrderID  int64 `db:"order_id"`
	DrugID   int64 `db:"drug_id"`
	Quantity int64 `db:"quantity"`
}

// OrderRepository persists order headers plus their order_details child
// rows. Placement and removal are transactional so header and line items
// can never diverge.
type OrderRepository struct {
	db       *sqlx.DB
	validate validation.Validator[*domain.Order]
	log      zerolog.Logger
}

func NewOrderRepository(db *sqlx.DB, log zerolog.Logger) *OrderRepository {
	return &OrderRepository{
		db:       db,
		validate: validation.ForOrder(),
		log:      log.With().Str("component", "order_repository").Logger(),
	}
}

const selectOrderColumns = `SELECT id, ordered_by, delivered, ordered_at, delivered_at FROM orders`

// loadDrugs reassembles the drug → quantity mapping for an order. No
// child rows yields an empty map, not an error.
func (r *OrderRepository) loadDrugs(ctx context.Context, orderID int64) (map[int64]int64, error) {
	var details []orderDetailRow
	err := r.db.SelectContext(ctx, &details,
		`SELECT order_id, drug_id, quantity FROM order_details WHERE order_id = ?;`, orderID)
	if err != nil {
		return nil, err
	}

	drugs := make(map[int64]int64, len(details))
	for _, d := range details {
		drugs[d.DrugID] = d.Quantity
	}
	return drugs, nil
}

func (r *OrderRepository) assemble(ctx context.Context, row orderRow) (*domain.Order, error) {
	drugs, err := r.loadDrugs(ctx, row.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("id", row.ID).Msg("loading order details failed")
		return nil, storageErr("load order details", err)
	}
	return &domain.Order{
		ID:          row.ID,
		OrderedBy:   row.OrderedBy,
		Delivered:   row.Delivered,
		OrderedAt:   row.OrderedAt,
		DeliveredAt: row.DeliveredAt,
		Drugs:       drugs,
	}, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, selectOrderColumns+` WHERE id = ?;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("order lookup failed")
		return nil, storageErr("get order", err)
	}
	return r.assemble(ctx, row)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, selectOrderColumns+`;`); err != nil {
		r.log.Error().Err(err).Msg("listing orders failed")
		return nil, storageErr("list orders", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.assemble(ctx, row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// Add inserts the order header only; the placement path that also writes
// line items is PlaceOrder.
func (r *OrderRepository) Add(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(order); err != nil {
		r.log.Warn().Err(err).Msg("order rejected by validator")
		return nil, err
	}

	if existing, err := r.existing(ctx, order.ID); existing != nil || err != nil {
		return existing, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (ordered_by, delivered, ordered_at, delivered_at) VALUES (?, ?, ?, ?);`,
		order.OrderedBy, order.Delivered, order.OrderedAt, order.DeliveredAt)
	if err != nil {
		r.log.Error().Err(err).Msg("order insert failed")
		return nil, storageErr("insert order", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error().Err(err).Msg("reading back generated order id failed")
		return nil, storageErr("insert order", err)
	}
	order.ID = id
	return nil, nil
}

// PlaceOrder writes the header and one child row per drug in a single
// transaction. Any failure rolls the whole placement back.
func (r *OrderRepository) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(order); err != nil {
		r.log.Warn().Err(err).Msg("order rejected by validator")
		return nil, err
	}

	if existing, err := r.existing(ctx, order.ID); existing != nil || err != nil {
		return existing, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error().Err(err).Msg("starting placement transaction failed")
		return nil, storageErr("place order", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (ordered_by, delivered, ordered_at, delivered_at) VALUES (?, ?, ?, ?);`,
		order.OrderedBy, order.Delivered, order.OrderedAt, order.DeliveredAt)
	if err != nil {
		r.log.Error().Err(err).Msg("order header insert failed")
		return nil, storageErr("place order", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error().Err(err).Msg("reading back generated order id failed")
		return nil, storageErr("place order", err)
	}

	for drugID, quantity := range order.Drugs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_details (order_id, drug_id, quantity) VALUES (?, ?, ?);`,
			id, drugID, quantity); err != nil {
			r.log.Error().Err(err).Int64("drug_id", drugID).Msg("order detail insert failed, rolling back")
			return nil, storageErr("place order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.log.Error().Err(err).Msg("committing placement failed")
		return nil, storageErr("place order", err)
	}

	order.ID = id
	return nil, nil
}

// existing checks the duplicate-id branch shared by Add and PlaceOrder.
func (r *OrderRepository) existing(ctx context.Context, id int64) (*domain.Order, error) {
	if id == 0 {
		return nil, nil
	}
	stored, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	r.log.Warn().Int64("id", id).Msg("order id already stored")
	return stored, nil
}

// Remove deletes the order and its line items in one transaction.
func (r *OrderRepository) Remove(ctx context.Context, id int64) (*domain.Order, error) {
	old, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error().Err(err).Msg("starting removal transaction failed")
		return nil, storageErr("delete order", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_details WHERE order_id = ?;`, id); err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("order details delete failed")
		return nil, storageErr("delete order", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?;`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("order delete failed")
		return nil, storageErr("delete order", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		r.log.Error().Err(err).Msg("committing removal failed")
		return nil, storageErr("delete order", err)
	}
	return old, nil
}

// Update rewrites the header fields only; line items are fixed at
// placement time.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(order); err != nil {
		r.log.Warn().Err(err).Msg("order rejected by validator")
		return nil, err
	}

	old, err := r.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE orders SET ordered_by = ?, delivered = ?, ordered_at = ?, delivered_at = ? WHERE id = ?;`,
		order.OrderedBy, order.Delivered, order.OrderedAt, order.DeliveredAt, order.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("id", order.ID).Msg("order update failed")
		return nil, storageErr("update order", err)
	}
	return old, nil
}

func (r *OrderRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_details;`); err != nil {
		r.log.Error().Err(err).Msg("clearing order details failed")
		return storageErr("clear orders", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders;`); err != nil {
		r.log.Error().Err(err).Msg("clearing orders failed")
		return storageErr("clear orders", err)
	}
	if err := resetSequence(r.db, "orders"); err != nil {
		r.log.Error().Err(err).Msg("resetting orders sequence failed")
	}
	return nil
}
