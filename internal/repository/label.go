package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

const labelsTable = "labels"

const getLabelByNameQuery = `
	SELECT pretty_url_name, id_string, label
	FROM labels
	WHERE pretty_url_name = @pretty_url_name`

const upsertLabelQuery = `
	INSERT INTO labels (pretty_url_name, id_string, label)
	VALUES (@pretty_url_name, @id_string, @label)
	ON CONFLICT (pretty_url_name) DO UPDATE
	SET id_string = EXCLUDED.id_string,
	    label = EXCLUDED.label,
	    updated_at = NOW()`

// labelRow is the scan target for the labels table.
type labelRow struct {
	PrettyUrlName string `db:"pretty_url_name"`
	IdString      string `db:"id_string"`
	Label         string `db:"label"`
}

// querier is the part of *pgxpool.Pool the repository uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LabelRepository reads and writes labels in PostgreSQL.
type LabelRepository struct {
	pool          querier
	logger        *zerolog.Logger
	slowThreshold time.Duration
}

// NewLabelRepository builds a LabelRepository on the server's pool.
func NewLabelRepository(s *server.Server) *LabelRepository {
	repo := &LabelRepository{logger: s.Logger}
	if s.DB != nil && s.DB.Pool != nil {
		repo.pool = s.DB.Pool
	}
	if s.Config.Observability != nil {
		repo.slowThreshold = s.Config.Observability.Logging.SlowQueryThreshold
	}
	return repo
}

// GetByName returns the label whose pretty URL name equals name.
//
// A missing row yields an error matching both ErrLabelNotFound and
// pgx.ErrNoRows.
func (r *LabelRepository) GetByName(ctx context.Context, name string) (model.LabelInformation, error) {
	start := time.Now()
	defer r.logSlowQuery("get_label_by_name", start)

	rows, err := r.pool.Query(ctx, getLabelByNameQuery, pgx.NamedArgs{"pretty_url_name": name})
	if err != nil {
		return model.LabelInformation{}, errors.Wrapf(err, "querying label %q", name)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[labelRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LabelInformation{}, fmt.Errorf("label %q: %w: %w", name, ErrLabelNotFound, err)
		}
		return model.LabelInformation{}, errors.Wrapf(err, "scanning label %q", name)
	}

	return model.LabelInformation{
		PrettyUrlName: row.PrettyUrlName,
		IdString:      row.IdString,
		Label:         row.Label,
	}, nil
}

// Upsert inserts label or replaces the existing row with the same pretty URL name.
func (r *LabelRepository) Upsert(ctx context.Context, label model.LabelInformation) error {
	start := time.Now()
	defer r.logSlowQuery("upsert_label", start)

	_, err := r.pool.Exec(ctx, upsertLabelQuery, pgx.NamedArgs{
		"pretty_url_name": label.PrettyUrlName,
		"id_string":       label.IdString,
		"label":           label.Label,
	})
	if err != nil {
		return errors.Wrapf(err, "upserting label %q", label.PrettyUrlName)
	}
	return nil
}

func (r *LabelRepository) logSlowQuery(operation string, start time.Time) {
	elapsed := time.Since(start)
	if r.slowThreshold <= 0 || elapsed < r.slowThreshold || r.logger == nil {
		return
	}

	r.logger.Warn().
		Str("operation", operation).
		Str("table", labelsTable).
		Dur("duration", elapsed).
		Dur("threshold", r.slowThreshold).
		Msg("slow query")
}
