package repositories

import (
	"context"
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExtraDirectorySort is the closed set of sort keys for extra directory lists.
type ExtraDirectorySort string

const (
	SortExtraDirectoriesByName     ExtraDirectorySort = "name"
	SortExtraDirectoriesByLongName ExtraDirectorySort = "longName"
)

// ParseExtraDirectorySort maps a request value to a sort key. Anything
// unknown falls back to name instead of failing.
func ParseExtraDirectorySort(raw string) ExtraDirectorySort {
	switch ExtraDirectorySort(raw) {
	case SortExtraDirectoriesByLongName:
		return SortExtraDirectoriesByLongName
	default:
		return SortExtraDirectoriesByName
	}
}

// IExtraDirectoryRepository is the data access surface for extra directories.
type IExtraDirectoryRepository interface {
	FindAll(ctx context.Context, filter models.ExtraDirectoryFilter, sort ExtraDirectorySort) ([]models.ExtraDirectory, error)
	FindAllByID(ctx context.Context) ([]models.ExtraDirectory, error)
	FindByID(ctx context.Context, id uint) (*models.ExtraDirectory, error)
	FindByName(ctx context.Context, name string) (*models.ExtraDirectory, error)
	Create(ctx context.Context, dir *models.ExtraDirectory) error
	Update(ctx context.Context, fields models.ExtraDirectoryFields, filter models.ExtraDirectoryFilter) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// ExtraDirectoryRepository stores extra directories.
type ExtraDirectoryRepository struct {
	base IBaseRepository[models.ExtraDirectory]
}

// NewExtraDirectoryRepository creates a new ExtraDirectoryRepository.
func NewExtraDirectoryRepository(db *gorm.DB) IExtraDirectoryRepository {
	base := NewBaseRepository[models.ExtraDirectory](db)
	base.SetAllowedSortColumns(map[string]string{
		"id":                                   "id",
		string(SortExtraDirectoriesByName):     "name",
		string(SortExtraDirectoriesByLongName): "long_name",
	})
	return &ExtraDirectoryRepository{base: base}
}

// FindAll lists directories matching filter, ordered by sort then id.
func (r *ExtraDirectoryRepository) FindAll(ctx context.Context, filter models.ExtraDirectoryFilter, sort ExtraDirectorySort) ([]models.ExtraDirectory, error) {
	return r.base.Find(ctx, FindOptions{
		Where:  filter.Conditions(),
		SortBy: []string{string(ParseExtraDirectorySort(string(sort))), "id"},
	})
}

// FindAllByID returns every row ordered by id, the layout used by the config dump.
func (r *ExtraDirectoryRepository) FindAllByID(ctx context.Context) ([]models.ExtraDirectory, error) {
	return r.base.Find(ctx, FindOptions{SortBy: []string{"id"}})
}

// FindByID returns the directory with id or ErrNotFound.
func (r *ExtraDirectoryRepository) FindByID(ctx context.Context, id uint) (*models.ExtraDirectory, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.First(ctx, map[string]interface{}{"id": id})
}

// FindByName returns the directory called name or ErrNotFound.
func (r *ExtraDirectoryRepository) FindByName(ctx context.Context, name string) (*models.ExtraDirectory, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	return r.base.First(ctx, map[string]interface{}{"name": name})
}

// Create inserts a directory.
func (r *ExtraDirectoryRepository) Create(ctx context.Context, dir *models.ExtraDirectory) error {
	if dir == nil {
		return errors.New("extra directory to create must not be nil")
	}
	if err := r.base.Create(ctx, dir); err != nil {
		configslog.Log.Error("ExtraDirectoryRepository.Create: DB error", zap.String("name", dir.Name), zap.Error(err))
		return err
	}
	return nil
}

// Update writes the set fields to every directory matching filter.
func (r *ExtraDirectoryRepository) Update(ctx context.Context, fields models.ExtraDirectoryFields, filter models.ExtraDirectoryFilter) (int64, error) {
	affected, err := r.base.UpdateWhere(ctx, fields.Columns(), filter.Conditions())
	if err != nil && !errors.Is(err, ErrEmptyFilter) && !errors.Is(err, ErrNothingToUpdate) {
		configslog.Log.Error("ExtraDirectoryRepository.Update: DB error", zap.Any("filter", filter.Conditions()), zap.Error(err))
	}
	return affected, err
}

// Delete removes one directory. A missing row gives ErrNotFound.
func (r *ExtraDirectoryRepository) Delete(ctx context.Context, id uint) error {
	affected, err := r.base.DeleteWhere(ctx, map[string]interface{}{"id": id})
	if err != nil {
		configslog.Log.Error("ExtraDirectoryRepository.Delete: DB error", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IExtraDirectoryRepository = (*ExtraDirectoryRepository)(nil)
