// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/models"
)

var itemsTable = models.Item{}.TableName()

var itemColumns = []string{
	"id", "owner_id", "name", "category", "room", "cupboard", "shelf", "loft",
	"inside_items", "notes", "image_name", "image_path", "created_at",
}

// searchableColumns are matched by SearchText, any of them may hit.
var searchableColumns = []string{"name", "category", "room", "cupboard", "shelf", "notes", "image_name"}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// itemRepository is the SQL implementation of [ItemRepository].
//
// Every statement it builds carries an owner_id predicate (or stamps
// owner_id on insert), so a caller cannot reach another account's rows.
type itemRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// owned is the predicate shared by every single-item statement.
func owned(ownerID, itemID int64) sq.Eq {
	return sq.Eq{"id": itemID, "owner_id": ownerID}
}

// Create stamps ownerID on a new item and returns the stored row.
func (r *itemRepository) Create(ctx context.Context, ownerID int64, item models.ItemCreate) (models.Item, error) {
	query, args, err := r.db.builder.
		Insert(itemsTable).
		Columns("owner_id", "name", "category", "room", "cupboard", "shelf", "loft",
			"inside_items", "notes", "image_name", "image_path", "created_at").
		Values(ownerID, item.Name, nullableArg(item.Category), item.Room,
			nullableArg(item.Cupboard), nullableArg(item.Shelf), nullableArg(item.Loft),
			nullableArg(item.InsideItems), nullableArg(item.Notes),
			nullableArg(item.ImageName), nullableArg(item.ImagePath), time.Now().UTC()).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return models.Item{}, r.buildError(ctx, "*itemRepository.Create", ownerID, err)
	}

	return r.queryOne(ctx, "*itemRepository.Create", ownerID, query, args)
}

// Get returns the item only if ownerID owns it.
func (r *itemRepository) Get(ctx context.Context, ownerID, itemID int64) (models.Item, error) {
	query, args, err := r.db.builder.
		Select(itemColumns...).
		From(itemsTable).
		Where(owned(ownerID, itemID)).
		ToSql()
	if err != nil {
		return models.Item{}, r.buildError(ctx, "*itemRepository.Get", ownerID, err)
	}

	return r.queryOne(ctx, "*itemRepository.Get", ownerID, query, args)
}

// List returns a window of the owner's items ordered by id.
func (r *itemRepository) List(ctx context.Context, ownerID int64, offset, limit int) ([]models.Item, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: negative offset or limit", ErrBuildingSQLQuery)
	}

	query, args, err := r.selectOwned(ownerID).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, "*itemRepository.List", ownerID, err)
	}

	return r.queryMany(ctx, "*itemRepository.List", ownerID, query, args)
}

// ListByRoom returns the owner's items whose room equals room.
func (r *itemRepository) ListByRoom(ctx context.Context, ownerID int64, room string) ([]models.Item, error) {
	query, args, err := r.selectOwned(ownerID).
		Where(sq.Eq{"room": room}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, "*itemRepository.ListByRoom", ownerID, err)
	}

	return r.queryMany(ctx, "*itemRepository.ListByRoom", ownerID, query, args)
}

// ListByCategory returns the owner's items whose category equals category.
func (r *itemRepository) ListByCategory(ctx context.Context, ownerID int64, category string) ([]models.Item, error) {
	query, args, err := r.selectOwned(ownerID).
		Where(sq.Eq{"category": category}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, "*itemRepository.ListByCategory", ownerID, err)
	}

	return r.queryMany(ctx, "*itemRepository.ListByCategory", ownerID, query, args)
}

// ListWithImages returns the owner's items that have an image locator.
func (r *itemRepository) ListWithImages(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query, args, err := r.selectOwned(ownerID).
		Where(sq.NotEq{"image_path": nil}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, "*itemRepository.ListWithImages", ownerID, err)
	}

	return r.queryMany(ctx, "*itemRepository.ListWithImages", ownerID, query, args)
}

// SearchText matches term as a case-insensitive substring against every
// searchable column. NULL columns never match.
func (r *itemRepository) SearchText(ctx context.Context, ownerID int64, term string) ([]models.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	anyColumn := make(sq.Or, 0, len(searchableColumns))
	for _, column := range searchableColumns {
		anyColumn = append(anyColumn, sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern))
	}

	query, args, err := r.selectOwned(ownerID).
		Where(anyColumn).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, "*itemRepository.SearchText", ownerID, err)
	}

	return r.queryMany(ctx, "*itemRepository.SearchText", ownerID, query, args)
}

// Update applies the non-nil fields of update. An empty update returns the
// item unchanged.
func (r *itemRepository) Update(ctx context.Context, ownerID, itemID int64, update models.ItemUpdate) (models.Item, error) {
	set := updateClauses(update)
	if len(set) == 0 {
		return r.Get(ctx, ownerID, itemID)
	}

	query, args, err := r.db.builder.
		Update(itemsTable).
		SetMap(set).
		Where(owned(ownerID, itemID)).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return models.Item{}, r.buildError(ctx, "*itemRepository.Update", ownerID, err)
	}

	return r.queryOne(ctx, "*itemRepository.Update", ownerID, query, args)
}

// AttachImage records an image display name and locator on an owned item.
func (r *itemRepository) AttachImage(ctx context.Context, ownerID, itemID int64, imageName, locator string) (models.Item, error) {
	query, args, err := r.db.builder.
		Update(itemsTable).
		Set("image_name", imageName).
		Set("image_path", locator).
		Where(owned(ownerID, itemID)).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return models.Item{}, r.buildError(ctx, "*itemRepository.AttachImage", ownerID, err)
	}

	return r.queryOne(ctx, "*itemRepository.AttachImage", ownerID, query, args)
}

// Delete removes an owned item and returns the row as it was.
func (r *itemRepository) Delete(ctx context.Context, ownerID, itemID int64) (models.Item, error) {
	query, args, err := r.db.builder.
		Delete(itemsTable).
		Where(owned(ownerID, itemID)).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return models.Item{}, r.buildError(ctx, "*itemRepository.Delete", ownerID, err)
	}

	return r.queryOne(ctx, "*itemRepository.Delete", ownerID, query, args)
}

// RoomCounts groups the owner's items by room.
func (r *itemRepository) RoomCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error) {
	return r.countBy(ctx, "*itemRepository.RoomCounts", ownerID, "room")
}

// CategoryCounts groups the owner's items by category, skipping items
// without one.
func (r *itemRepository) CategoryCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error) {
	return r.countBy(ctx, "*itemRepository.CategoryCounts", ownerID, "category")
}

func (r *itemRepository) countBy(ctx context.Context, funcName string, ownerID int64, column string) ([]models.NamedCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(column, "COUNT(*)").
		From(itemsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.NotEq{column: nil}).
		Where(sq.NotEq{column: ""}).
		GroupBy(column).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, r.buildError(ctx, funcName, ownerID, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to execute query")
		return nil, r.db.wrapError(err)
	}
	defer rows.Close()

	counts := make([]models.NamedCount, 0)
	for rows.Next() {
		var c models.NamedCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.wrapError(err))
	}

	return counts, nil
}

func (r *itemRepository) selectOwned(ownerID int64) sq.SelectBuilder {
	return r.db.builder.
		Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"owner_id": ownerID})
}

func (r *itemRepository) queryOne(ctx context.Context, funcName string, ownerID int64, query string, args []any) (models.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Msg("failed to execute query")
		return models.Item{}, r.db.wrapError(err)
	}

	return item, nil
}

func (r *itemRepository) queryMany(ctx context.Context, funcName string, ownerID int64, query string, args []any) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to execute query")
		return nil, r.db.wrapError(err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.wrapError(err))
	}

	return items, nil
}

func (r *itemRepository) buildError(ctx context.Context, funcName string, ownerID int64, err error) error {
	logger.FromContext(ctx).Err(err).
		Str("func", funcName).
		Int64("owner_id", ownerID).
		Msg("failed to build query")
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}

// updateClauses maps the non-nil fields of update to their columns.
func updateClauses(update models.ItemUpdate) map[string]any {
	set := make(map[string]any)

	fields := []struct {
		column string
		value  *string
	}{
		{"name", update.Name},
		{"category", update.Category},
		{"room", update.Room},
		{"cupboard", update.Cupboard},
		{"shelf", update.Shelf},
		{"loft", update.Loft},
		{"inside_items", update.InsideItems},
		{"notes", update.Notes},
		{"image_name", update.ImageName},
		{"image_path", update.ImagePath},
	}
	for _, f := range fields {
		if f.value != nil {
			set[f.column] = *f.value
		}
	}

	return set
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var category, cupboard, shelf, loft, insideItems, notes, imageName, imagePath sql.NullString

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&category,
		&item.Room,
		&cupboard,
		&shelf,
		&loft,
		&insideItems,
		&notes,
		&imageName,
		&imagePath,
		timestamp{dst: &item.CreatedAt},
	)
	if err != nil {
		return models.Item{}, err
	}

	item.Category = nullableString(category)
	item.Cupboard = nullableString(cupboard)
	item.Shelf = nullableString(shelf)
	item.Loft = nullableString(loft)
	item.InsideItems = nullableString(insideItems)
	item.Notes = nullableString(notes)
	item.ImageName = nullableString(imageName)
	item.ImagePath = nullableString(imagePath)

	return item, nil
}
