package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/validation"
)

type drugRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	InStock     int64  `db:"in_stock"`
}

func (r drugRow) toDomain() *domain.Drug {
	return &domain.Drug{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		InStock:     r.InStock,
	}
}

// DrugRepository persists catalog entries.
type DrugRepository struct {
	db       *sqlx.DB
	validate validation.Validator[*domain.Drug]
	log      zerolog.Logger
}

func NewDrugRepository(db *sqlx.DB, log zerolog.Logger) *DrugRepository {
	return &DrugRepository{
		db:       db,
		validate: validation.ForDrug(),
		log:      log.With().Str("component", "drug_repository").Logger(),
	}
}

func (r *DrugRepository) GetByID(ctx context.Context, id int64) (*domain.Drug, error) {
	var row drugRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, description, in_stock FROM drugs WHERE id = ?;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("drug lookup failed")
		return nil, storageErr("get drug", err)
	}
	return row.toDomain(), nil
}

func (r *DrugRepository) GetAll(ctx context.Context) ([]domain.Drug, error) {
	var rows []drugRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, description, in_stock FROM drugs;`); err != nil {
		r.log.Error().Err(err).Msg("listing drugs failed")
		return nil, storageErr("list drugs", err)
	}

	drugs := make([]domain.Drug, 0, len(rows))
	for _, row := range rows {
		drugs = append(drugs, *row.toDomain())
	}
	return drugs, nil
}

// GetAvailable returns every drug with stock on hand.
func (r *DrugRepository) GetAvailable(ctx context.Context) ([]domain.Drug, error) {
	var rows []drugRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, description, in_stock FROM drugs WHERE in_stock > 0;`); err != nil {
		r.log.Error().Err(err).Msg("listing available drugs failed")
		return nil, storageErr("list available drugs", err)
	}

	drugs := make([]domain.Drug, 0, len(rows))
	for _, row := range rows {
		drugs = append(drugs, *row.toDomain())
	}
	return drugs, nil
}

func (r *DrugRepository) Add(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	if drug == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(drug); err != nil {
		r.log.Warn().Err(err).Msg("drug rejected by validator")
		return nil, err
	}

	if drug.ID != 0 {
		if existing, err := r.GetByID(ctx, drug.ID); err == nil {
			r.log.Warn().Int64("id", drug.ID).Msg("drug id already stored")
			return existing, nil
		}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO drugs (name, description, in_stock) VALUES (?, ?, ?);`,
		drug.Name, drug.Description, drug.InStock)
	if err != nil {
		r.log.Error().Err(err).Msg("drug insert failed")
		return nil, storageErr("insert drug", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error().Err(err).Msg("reading back generated drug id failed")
		return nil, storageErr("insert drug", err)
	}
	drug.ID = id
	return nil, nil
}

func (r *DrugRepository) Remove(ctx context.Context, id int64) (*domain.Drug, error) {
	old, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM drugs WHERE id = ?;`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("drug delete failed")
		return nil, storageErr("delete drug", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return old, nil
}

func (r *DrugRepository) Update(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	if drug == nil {
		return nil, domain.ErrNilEntity
	}
	if err := r.validate.Validate(drug); err != nil {
		r.log.Warn().Err(err).Msg("drug rejected by validator")
		return nil, err
	}

	old, err := r.GetByID(ctx, drug.ID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE drugs SET name = ?, description = ?, in_stock = ? WHERE id = ?;`,
		drug.Name, drug.Description, drug.InStock, drug.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("id", drug.ID).Msg("drug update failed")
		return nil, storageErr("update drug", err)
	}
	return old, nil
}

func (r *DrugRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drugs;`); err != nil {
		r.log.Error().Err(err).Msg("clearing drugs failed")
		return storageErr("clear drugs", err)
	}
	if err := resetSequence(r.db, "drugs"); err != nil {
		r.log.Error().Err(err).Msg("resetting drugs sequence failed")
	}
	return nil
}
