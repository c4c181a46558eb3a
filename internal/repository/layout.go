package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/officegen/internal/wfc"
)

const listLimit = 100

// Layout is a finished layout. Seed holds the uint64 generator seed
// reinterpreted as a signed BIGINT.
type Layout struct {
	LayoutID  int64              `db:"layout_id"`
	PlayerID  *int64             `db:"player_id"`
	Size      int32              `db:"size"`
	Seed      int64              `db:"seed"`
	Attempts  int32              `db:"attempts"`
	Tiles     wfc.Layout         `db:"tiles"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

func (l Layout) GeneratorSeed() uint64 { return uint64(l.Seed) }

type CreateLayoutParams struct {
	PlayerID *int64
	Seed     uint64
	Attempts int
	Tiles    wfc.Layout
}

func (q *Queries) CreateLayout(ctx context.Context, params CreateLayoutParams) (*Layout, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO layout (player_id, size, seed, attempts, tiles)
		VALUES (@player_id, @size, @seed, @attempts, @tiles)
		RETURNING *`,
		pgx.NamedArgs{
			"player_id": params.PlayerID,
			"size":      params.Tiles.Size(),
			"seed":      int64(params.Seed),
			"attempts":  params.Attempts,
			"tiles":     params.Tiles,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Layout])
}

func (q *Queries) FetchLayout(ctx context.Context, layoutID int64) (*Layout, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM layout WHERE layout_id = $1", layoutID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Layout])
}

type LayoutSummary struct {
	LayoutID  int64              `db:"layout_id"`
	Username  *string            `db:"username"`
	Size      int32              `db:"size"`
	Seed      int64              `db:"seed"`
	Attempts  int32              `db:"attempts"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

type LayoutFilter struct {
	Username *string
	Size     *int
}

func (f LayoutFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0, 2)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Size != nil {
		clauses = append(clauses, "size = @size")
		args["size"] = *f.Size
	}
	return strings.Join(clauses, " AND "), args
}

// ListLayouts returns the most recent layouts matching filter.
func (q *Queries) ListLayouts(ctx context.Context, filter LayoutFilter) ([]LayoutSummary, error) {
	query := `
	SELECT layout_id, username, size, seed, attempts, layout.created_at
	FROM layout
		LEFT OUTER JOIN player USING (player_id)`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += "\n\tWHERE " + whereClause
	}
	query += "\n\tORDER BY layout.created_at DESC, layout_id DESC"
	query += "\n\tLIMIT @limit"
	args["limit"] = listLimit

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[LayoutSummary])
}
