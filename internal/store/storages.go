package store

import "github.com/MKhiriev/go-home-inventory/internal/logger"

// Storages groups the repositories built on one database connection.
type Storages struct {
	AccountRepository AccountRepository
	ItemRepository    ItemRepository
}

// NewStorages builds every repository over db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		ItemRepository:    NewItemRepository(db, log),
	}
}
