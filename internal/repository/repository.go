package repository

import (
	"database/sql"
	"fmt"
)

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n, nil
}
