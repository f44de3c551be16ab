// Package dbtx lets gorm repositories join a transaction opened on *sql.DB.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Conn returns a gorm handle scoped to ctx. When tx is non-nil every statement
// issued through the handle runs on tx.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db.WithContext(ctx)
	}

	s := db.Session(&gorm.Session{
		NewDB:                  true,
		Context:                ctx,
		SkipDefaultTransaction: true,
	})
	s.Statement.ConnPool = tx
	return s
}

// ForUpdate locks selected rows until the surrounding transaction ends.
func ForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// ForShare blocks concurrent writers of the selected rows without blocking readers.
func ForShare() clause.Locking {
	return clause.Locking{Strength: "SHARE"}
}
