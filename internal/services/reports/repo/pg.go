package repo

import (
	"context"

	"truthlens/internal/modkit/repokit"
	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/store"
	"truthlens/internal/services/reports/domain"
)

// Schema creates the reports table; safe to run on every boot
const Schema = `
CREATE TABLE IF NOT EXISTS reports (
	seq            bigserial,
	id             uuid PRIMARY KEY,
	article_url    text   NOT NULL,
	reason         text   NOT NULL,
	comment        text,
	user_reference text,
	ts             bigint NOT NULL,
	created_at     timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS reports_article_url_idx ON reports (article_url, seq);
`

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a repo binder for Postgres
func NewPG() repokit.Binder[domain.StorePort] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorePort { return &pg{q: q} }

// EnsureSchema applies Schema
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return perr.FromPostgres(err, "create reports schema")
}

// Save implements domain.StorePort
func (s *pg) Save(ctx context.Context, r domain.Report) error {
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO reports (id, article_url, reason, comment, user_reference, ts)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)`,
		r.ID, r.ArticleURL, r.Reason, r.Comment, r.UserReference, r.Timestamp,
	)
	return perr.FromPostgresWithField(err, "insert report")
}

// ByURL implements domain.StorePort
func (s *pg) ByURL(ctx context.Context, url string) ([]domain.Report, error) {
	out, err := store.Many(ctx, s.q, scanReport, `
		SELECT id::text, article_url, reason, comment, user_reference, ts
		FROM reports
		WHERE article_url = $1
		ORDER BY seq`, url)
	if err != nil {
		return nil, perr.FromPostgres(err, "list reports")
	}
	return out, nil
}

// Counts implements domain.StorePort
func (s *pg) Counts(ctx context.Context) (domain.Counts, error) {
	type row struct {
		reason string
		n      int64
	}
	rows, err := store.Many(ctx, s.q, func(r store.Row) (row, error) {
		var x row
		err := r.Scan(&x.reason, &x.n)
		return x, err
	}, `SELECT reason, count(*) FROM reports GROUP BY reason`)
	if err != nil {
		return domain.Counts{}, perr.FromPostgres(err, "count reports")
	}
	c := domain.Counts{ByReason: make(map[string]int64, len(rows))}
	for _, x := range rows {
		c.Total += x.n
		if x.reason != "" {
			c.ByReason[x.reason] = x.n
		}
	}
	return c, nil
}

func scanReport(r store.Row) (domain.Report, error) {
	var x domain.Report
	err := r.Scan(&x.ID, &x.ArticleURL, &x.Reason, &x.Comment, &x.UserReference, &x.Timestamp)
	return x, err
}
