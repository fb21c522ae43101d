package repositories

import (
	"context"
	"errors"

	"openvdm.io/openvdm/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txContextKey struct{}

// ContextWithTx makes repositories created from any handle run on tx.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// FindOptions describes a select: equality conditions and an ordered list
// of sort keys. Sort keys are resolved through the repository's allowed
// columns, unknown keys are dropped.
type FindOptions struct {
	Where  map[string]interface{}
	SortBy []string
	Limit  int
	Offset int
}

// IBaseRepository is the narrow select/insert/update/delete/truncate
// surface every model is built on.
type IBaseRepository[T any] interface {
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	First(ctx context.Context, where map[string]interface{}) (*T, error)
	Count(ctx context.Context, where map[string]interface{}) (int64, error)
	Create(ctx context.Context, entity *T) error
	UpdateWhere(ctx context.Context, data map[string]interface{}, where map[string]interface{}) (int64, error)
	DeleteWhere(ctx context.Context, where map[string]interface{}) (int64, error)
	Truncate(ctx context.Context) error
	SetAllowedSortColumns(columns map[string]string)
	DB(ctx context.Context) *gorm.DB
}

// BaseRepository implements IBaseRepository over gorm.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]string
}

// NewBaseRepository creates a repository for T that sorts by id only.
func NewBaseRepository[T any](db *gorm.DB) IBaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: map[string]string{"id": "id"}}
}

// SetAllowedSortColumns maps public sort keys to column names.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns map[string]string) {
	r.sortColumns = columns
}

// DB returns the transaction carried by ctx, or the base handle.
func (r *BaseRepository[T]) DB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Find lists rows matching opts.
func (r *BaseRepository[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	var results []T
	query := r.DB(ctx).Model(new(T))
	if len(opts.Where) > 0 {
		query = query.Where(opts.Where)
	}
	for _, key := range opts.SortBy {
		column, ok := r.sortColumns[key]
		if !ok {
			continue
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}})
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}
	if err := query.Find(&results).Error; err != nil {
		configslog.Log.Error("BaseRepository.Find: DB error", zap.Error(err))
		return nil, err
	}
	return results, nil
}

// First returns one matching row or ErrNotFound.
func (r *BaseRepository[T]) First(ctx context.Context, where map[string]interface{}) (*T, error) {
	var result T
	err := r.DB(ctx).Where(where).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BaseRepository.First: DB error", zap.Any("where", where), zap.Error(err))
		return nil, err
	}
	return &result, nil
}

// Count counts rows matching where.
func (r *BaseRepository[T]) Count(ctx context.Context, where map[string]interface{}) (int64, error) {
	var count int64
	query := r.DB(ctx).Model(new(T))
	if len(where) > 0 {
		query = query.Where(where)
	}
	err := query.Count(&count).Error
	return count, err
}

// Create inserts entity and fills its primary key.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity to create must not be nil")
	}
	return r.DB(ctx).Create(entity).Error
}

// UpdateWhere writes data to every row matching where. A row whose values
// already match still counts as matched on most drivers, callers should
// not rely on the affected count for idempotent updates.
func (r *BaseRepository[T]) UpdateWhere(ctx context.Context, data map[string]interface{}, where map[string]interface{}) (int64, error) {
	if len(data) == 0 {
		return 0, ErrNothingToUpdate
	}
	if len(where) == 0 {
		return 0, ErrEmptyFilter
	}
	result := r.DB(ctx).Model(new(T)).Where(where).Updates(data)
	return result.RowsAffected, result.Error
}

// DeleteWhere removes matching rows. An empty filter is refused.
func (r *BaseRepository[T]) DeleteWhere(ctx context.Context, where map[string]interface{}) (int64, error) {
	if len(where) == 0 {
		return 0, ErrEmptyFilter
	}
	result := r.DB(ctx).Where(where).Delete(new(T))
	return result.RowsAffected, result.Error
}

// Truncate empties the table. Postgres gets a real TRUNCATE, other
// dialects fall back to an unconditional DELETE.
func (r *BaseRepository[T]) Truncate(ctx context.Context) error {
	db := r.DB(ctx)
	if db.Dialector.Name() != "postgres" {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return err
	}
	return db.Exec("TRUNCATE TABLE ? RESTART IDENTITY", clause.Table{Name: stmt.Schema.Table}).Error
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
