package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReviewsSchema = `
	CREATE TABLE IF NOT EXISTS reviews (
		review_id VARCHAR NOT NULL,
		ts TIMESTAMP NOT NULL,
		status VARCHAR NOT NULL,
		aws_account_id VARCHAR NOT NULL,
		region VARCHAR NOT NULL,
		pillars JSON,
		findings JSON,
		recommendations JSON,
		score DOUBLE,
		error_message VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (review_id, ts)
	);
`

var bootQueries = []string{
	ReviewsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database once and runs the boot schema. The returned
// handle is meant to be shared for the life of the process.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
