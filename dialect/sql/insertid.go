package sql

import (
	"github.com/syssam/loam/dialect"
)

// recoverInsertIDs determines the primary keys of freshly inserted rows on
// dialects where the INSERT itself could not report them via RETURNING.
//
// The ladder, in order:
//
//  1. Every row supplied the primary key explicitly. The supplied values
//     are echoed back in row order without touching the driver result.
//  2. A single-row insert on a dialect exposing LastInsertId yields the
//     driver-reported key.
//  3. Otherwise the keys are unrecoverable and an empty list is returned.
//     Batch inserts with driver-generated keys on such dialects are a
//     documented limitation, not an error.
func recoverInsertIDs(d, pk string, rows []map[string]any, res Result) ([]any, error) {
	if pk != "" {
		supplied := make([]any, 0, len(rows))
		for _, row := range rows {
			v, ok := row[pk]
			if !ok || v == nil {
				supplied = nil
				break
			}
			supplied = append(supplied, v)
		}
		if supplied != nil {
			return supplied, nil
		}
	}
	if len(rows) == 1 && dialect.SupportsLastInsertID(d) {
		id, err := res.LastInsertId()
		if err != nil {
			return nil, statef("driver did not report the generated key: %v", err)
		}
		return []any{id}, nil
	}
	return []any{}, nil
}
