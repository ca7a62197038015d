// Package repomanager vends repositories bound to a database handle, so that
// services can run several repositories inside one transaction.
package repomanager

import (
	"github.com/dmitrijs2005/weighttracker/internal/dbx"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/metadata"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/users"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/weights"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Weights(db dbx.DBTX) weights.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// SQLiteRepositoryManager returns the SQLite implementations.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Weights(db dbx.DBTX) weights.Repository {
	return weights.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}
