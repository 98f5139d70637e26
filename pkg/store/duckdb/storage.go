package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ExamTableSchema = `
	CREATE TABLE IF NOT EXISTS exam_records (
		physician VARCHAR NOT NULL,
		modality VARCHAR NOT NULL,
		rvu DOUBLE NOT NULL,
		points DOUBLE NOT NULL,
		exam_time TIMESTAMP NOT NULL,
		exam_type VARCHAR
	);
`

var bootQueries = []string{
	ExamTableSchema,
}

type Settings struct {
	DbPath string
	// ReadOnly opens the database without write access and skips the
	// boot queries. The dashboard never mutates its input sources.
	ReadOnly bool
}

func NewDB(settings Settings) (*sql.DB, error) {
	dsn := settings.DbPath
	if settings.ReadOnly {
		dsn = fmt.Sprintf("%s?access_mode=read_only", settings.DbPath)
	}

	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		if settings.ReadOnly {
			return nil
		}
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

	return sql.OpenDB(c), nil
}
