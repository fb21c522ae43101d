package repositories

import (
	"context"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICruiseDataTransferRepository is the transfer table surface the extra directory delete needs.
type ICruiseDataTransferRepository interface {
	FindAll(ctx context.Context) ([]models.CruiseDataTransfer, error)
	Create(ctx context.Context, transfer *models.CruiseDataTransfer) error
	ClearExtraDirectory(ctx context.Context, extraDirectoryID uint) error
}

// CruiseDataTransferRepository stores cruise data transfers.
type CruiseDataTransferRepository struct {
	base IBaseRepository[models.CruiseDataTransfer]
}

// NewCruiseDataTransferRepository creates a new CruiseDataTransferRepository.
func NewCruiseDataTransferRepository(db *gorm.DB) ICruiseDataTransferRepository {
	return &CruiseDataTransferRepository{base: NewBaseRepository[models.CruiseDataTransfer](db)}
}

// FindAll lists every transfer ordered by id.
func (r *CruiseDataTransferRepository) FindAll(ctx context.Context) ([]models.CruiseDataTransfer, error) {
	return r.base.Find(ctx, FindOptions{SortBy: []string{"id"}})
}

// Create inserts a transfer.
func (r *CruiseDataTransferRepository) Create(ctx context.Context, transfer *models.CruiseDataTransfer) error {
	return r.base.Create(ctx, transfer)
}

// ClearExtraDirectory drops extraDirectoryID from every transfer's
// excluded directory list.
func (r *CruiseDataTransferRepository) ClearExtraDirectory(ctx context.Context, extraDirectoryID uint) error {
	var transfers []models.CruiseDataTransfer
	err := r.base.DB(ctx).
		Where("excluded_dirs IS NOT NULL AND excluded_dirs <> ?", "").
		Order("id").
		Find(&transfers).Error
	if err != nil {
		configslog.Log.Error("CruiseDataTransferRepository.ClearExtraDirectory: DB error",
			zap.Uint("extra_directory_id", extraDirectoryID), zap.Error(err))
		return err
	}

	for _, transfer := range transfers {
		ids := transfer.ExcludedDirIDs()
		kept := ids[:0]
		for _, id := range ids {
			if id != extraDirectoryID {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(ids) {
			continue
		}
		_, err := r.base.UpdateWhere(ctx,
			map[string]interface{}{"excluded_dirs": models.JoinDirIDs(kept)},
			map[string]interface{}{"id": transfer.ID})
		if err != nil {
			configslog.Log.Error("CruiseDataTransferRepository.ClearExtraDirectory: update failed",
				zap.Uint("cruise_data_transfer_id", transfer.ID), zap.Error(err))
			return err
		}
		configslog.Log.Debug("extra directory removed from transfer exclusions",
			zap.Uint("cruise_data_transfer_id", transfer.ID), zap.Uint("extra_directory_id", extraDirectoryID))
	}
	return nil
}

var _ ICruiseDataTransferRepository = (*CruiseDataTransferRepository)(nil)
