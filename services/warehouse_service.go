package services

import (
	"context"
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IWarehouseService exposes the warehouse settings other services consult.
type IWarehouseService interface {
	GetShowLoweringComponents(ctx context.Context) (bool, error)
	SetShowLoweringComponents(ctx context.Context, show bool) error
}

// WarehouseService reads warehouse settings from the core vars table.
type WarehouseService struct {
	coreVars repositories.ICoreVarRepository
}

// NewWarehouseService creates a new WarehouseService.
func NewWarehouseService(db *gorm.DB) IWarehouseService {
	return &WarehouseService{coreVars: repositories.NewCoreVarRepository(db)}
}

// GetShowLoweringComponents reports whether lowering scoped components are
// active. A missing setting means no.
func (s *WarehouseService) GetShowLoweringComponents(ctx context.Context) (bool, error) {
	coreVar, err := s.coreVars.FindByName(ctx, models.CoreVarShowLoweringComponents)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		configslog.Log.Error("GetShowLoweringComponents: repo error", zap.Error(err))
		return false, err
	}
	return coreVar.Value == models.CoreVarValueYes, nil
}

// SetShowLoweringComponents stores the lowering components flag.
func (s *WarehouseService) SetShowLoweringComponents(ctx context.Context, show bool) error {
	value := models.CoreVarValueNo
	if show {
		value = models.CoreVarValueYes
	}
	return s.coreVars.Set(ctx, models.CoreVarShowLoweringComponents, value)
}

var _ IWarehouseService = (*WarehouseService)(nil)
