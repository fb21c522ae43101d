package repositories

import (
	"context"

	"openvdm.io/openvdm/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ICoreVarRepository reads and writes warehouse settings.
type ICoreVarRepository interface {
	FindByName(ctx context.Context, name string) (*models.CoreVar, error)
	Set(ctx context.Context, name, value string) error
}

// CoreVarRepository stores settings in the core vars table.
type CoreVarRepository struct {
	base IBaseRepository[models.CoreVar]
}

// NewCoreVarRepository creates a new CoreVarRepository.
func NewCoreVarRepository(db *gorm.DB) ICoreVarRepository {
	return &CoreVarRepository{base: NewBaseRepository[models.CoreVar](db)}
}

// FindByName returns the setting called name or ErrNotFound.
func (r *CoreVarRepository) FindByName(ctx context.Context, name string) (*models.CoreVar, error) {
	return r.base.First(ctx, map[string]interface{}{"name": name})
}

// Set inserts or overwrites a core variable.
func (r *CoreVarRepository) Set(ctx context.Context, name, value string) error {
	return r.base.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.CoreVar{Name: name, Value: value}).Error
}

var _ ICoreVarRepository = (*CoreVarRepository)(nil)
