package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExtraDirectoryServiceError extra directory specific service errors.
type ExtraDirectoryServiceError string

func (e ExtraDirectoryServiceError) Error() string { return string(e) }

const (
	ErrExtraDirectoryNotFound       ExtraDirectoryServiceError = "extra directory not found"
	ErrExtraDirectoryRequired       ExtraDirectoryServiceError = "required extra directories can not be deleted"
	ErrExtraDirectoryInvalidInput   ExtraDirectoryServiceError = "invalid extra directory data"
	ErrExtraDirectoryNameExists     ExtraDirectoryServiceError = "an extra directory with this name already exists"
	ErrExtraDirectoryDeletionFailed ExtraDirectoryServiceError = "extra directory could not be deleted"
)

// IExtraDirectoryService manages the extra directories of a cruise.
type IExtraDirectoryService interface {
	GetExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetRequiredExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetNonRequiredExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetActiveExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetActiveCruiseExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetActiveLoweringExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error)
	GetExtraDirectory(ctx context.Context, id uint) (*models.ExtraDirectory, error)
	GetExtraDirectoryByName(ctx context.Context, name string) (*models.ExtraDirectory, error)
	InsertExtraDirectory(ctx context.Context, fields models.ExtraDirectoryFields) (*models.ExtraDirectory, error)
	UpdateExtraDirectory(ctx context.Context, fields models.ExtraDirectoryFields, filter models.ExtraDirectoryFilter) error
	EnableExtraDirectory(ctx context.Context, id uint) error
	DisableExtraDirectory(ctx context.Context, id uint) error
	DeleteExtraDirectory(ctx context.Context, id uint) error
	GetExtraDirectoriesConfig(ctx context.Context) ([]models.ExtraDirectory, error)
}

// ExtraDirectoryService implements IExtraDirectoryService.
type ExtraDirectoryService struct {
	repo      repositories.IExtraDirectoryRepository
	transfers ICruiseDataTransferService
	warehouse IWarehouseService
	db        *gorm.DB // delete transaction
}

// NewExtraDirectoryService creates a new ExtraDirectoryService.
func NewExtraDirectoryService(db *gorm.DB, transfers ICruiseDataTransferService, warehouse IWarehouseService) IExtraDirectoryService {
	return &ExtraDirectoryService{
		repo:      repositories.NewExtraDirectoryRepository(db),
		transfers: transfers,
		warehouse: warehouse,
		db:        db,
	}
}

// --- Validation ---

// ValidateNewExtraDirectory checks the fields needed to create a directory.
func ValidateNewExtraDirectory(fields models.ExtraDirectoryFields) error {
	if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrExtraDirectoryInvalidInput)
	}
	if fields.LongName == nil || strings.TrimSpace(*fields.LongName) == "" {
		return fmt.Errorf("%w: long name is required", ErrExtraDirectoryInvalidInput)
	}
	if fields.DestDir == nil || strings.TrimSpace(*fields.DestDir) == "" {
		return fmt.Errorf("%w: destination directory is required", ErrExtraDirectoryInvalidInput)
	}
	return validateExtraDirectoryFields(fields)
}

// validateExtraDirectoryFields checks the fields that are set. A set text
// field may not be blank.
func validateExtraDirectoryFields(fields models.ExtraDirectoryFields) error {
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return fmt.Errorf("%w: name can not be blank", ErrExtraDirectoryInvalidInput)
	}
	if fields.LongName != nil && strings.TrimSpace(*fields.LongName) == "" {
		return fmt.Errorf("%w: long name can not be blank", ErrExtraDirectoryInvalidInput)
	}
	if fields.DestDir != nil && strings.TrimSpace(*fields.DestDir) == "" {
		return fmt.Errorf("%w: destination directory can not be blank", ErrExtraDirectoryInvalidInput)
	}
	if fields.Name != nil && strings.ContainsAny(*fields.Name, " /\\") {
		return fmt.Errorf("%w: name can not contain spaces or slashes", ErrExtraDirectoryInvalidInput)
	}
	if fields.DestDir != nil && strings.HasPrefix(*fields.DestDir, "/") {
		return fmt.Errorf("%w: destination directory must be relative", ErrExtraDirectoryInvalidInput)
	}
	if fields.CruiseOrLowering != nil && !fields.CruiseOrLowering.Valid() {
		return fmt.Errorf("%w: cruiseOrLowering must be 0 or 1", ErrExtraDirectoryInvalidInput)
	}
	return nil
}

// --- Lists ---

func (s *ExtraDirectoryService) list(ctx context.Context, filter models.ExtraDirectoryFilter, sort string) ([]models.ExtraDirectory, error) {
	dirs, err := s.repo.FindAll(ctx, filter, repositories.ParseExtraDirectorySort(sort))
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// GetExtraDirectories lists every directory.
func (s *ExtraDirectoryService) GetExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	return s.list(ctx, models.ExtraDirectoryFilter{}, sort)
}

// GetRequiredExtraDirectories lists the directories OpenVDM itself needs.
func (s *ExtraDirectoryService) GetRequiredExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	required := true
	return s.list(ctx, models.ExtraDirectoryFilter{Required: &required}, sort)
}

// GetNonRequiredExtraDirectories lists the user defined directories.
func (s *ExtraDirectoryService) GetNonRequiredExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	required := false
	return s.list(ctx, models.ExtraDirectoryFilter{Required: &required}, sort)
}

// GetActiveExtraDirectories lists enabled directories. While lowering
// components are hidden only cruise scoped directories count as active.
func (s *ExtraDirectoryService) GetActiveExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	showLowering, err := s.warehouse.GetShowLoweringComponents(ctx)
	if err != nil {
		return nil, err
	}
	enable := true
	filter := models.ExtraDirectoryFilter{Enable: &enable}
	if !showLowering {
		cruise := models.CruiseOrLoweringCruise
		filter.CruiseOrLowering = &cruise
	}
	return s.list(ctx, filter, sort)
}

// GetActiveCruiseExtraDirectories lists enabled cruise scoped directories.
func (s *ExtraDirectoryService) GetActiveCruiseExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	enable := true
	scope := models.CruiseOrLoweringCruise
	return s.list(ctx, models.ExtraDirectoryFilter{Enable: &enable, CruiseOrLowering: &scope}, sort)
}

// GetActiveLoweringExtraDirectories lists enabled lowering scoped directories.
func (s *ExtraDirectoryService) GetActiveLoweringExtraDirectories(ctx context.Context, sort string) ([]models.ExtraDirectory, error) {
	enable := true
	scope := models.CruiseOrLoweringLowering
	return s.list(ctx, models.ExtraDirectoryFilter{Enable: &enable, CruiseOrLowering: &scope}, sort)
}

// GetExtraDirectoriesConfig dumps every directory ordered by id.
func (s *ExtraDirectoryService) GetExtraDirectoriesConfig(ctx context.Context) ([]models.ExtraDirectory, error) {
	return s.repo.FindAllByID(ctx)
}

// --- Lookups ---

// GetExtraDirectory returns nil without an error when no row matches.
func (s *ExtraDirectoryService) GetExtraDirectory(ctx context.Context, id uint) (*models.ExtraDirectory, error) {
	dir, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return dir, err
}

// GetExtraDirectoryByName returns nil without an error when no row matches.
func (s *ExtraDirectoryService) GetExtraDirectoryByName(ctx context.Context, name string) (*models.ExtraDirectory, error) {
	dir, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return dir, err
}

// --- Mutations ---

// InsertExtraDirectory validates and stores a new directory.
func (s *ExtraDirectoryService) InsertExtraDirectory(ctx context.Context, fields models.ExtraDirectoryFields) (*models.ExtraDirectory, error) {
	if err := ValidateNewExtraDirectory(fields); err != nil {
		return nil, err
	}
	existing, err := s.GetExtraDirectoryByName(ctx, *fields.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrExtraDirectoryNameExists
	}

	dir := fields.ExtraDirectory()
	if err := s.repo.Create(ctx, &dir); err != nil {
		return nil, err
	}
	configslog.Log.Info("extra directory created", zap.Uint("id", dir.ID), zap.String("name", dir.Name))
	return &dir, nil
}

// UpdateExtraDirectory writes the set fields to the directories matching filter.
func (s *ExtraDirectoryService) UpdateExtraDirectory(ctx context.Context, fields models.ExtraDirectoryFields, filter models.ExtraDirectoryFilter) error {
	if fields.IsEmpty() || filter.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrExtraDirectoryInvalidInput)
	}
	if err := validateExtraDirectoryFields(fields); err != nil {
		return err
	}
	if fields.Name != nil {
		existing, err := s.GetExtraDirectoryByName(ctx, *fields.Name)
		if err != nil {
			return err
		}
		if existing != nil && !filterTargets(filter, existing) {
			return ErrExtraDirectoryNameExists
		}
	}
	_, err := s.repo.Update(ctx, fields, filter)
	return err
}

// filterTargets reports whether filter selects dir itself, so that
// writing dir's own name back is not a conflict.
func filterTargets(filter models.ExtraDirectoryFilter, dir *models.ExtraDirectory) bool {
	if filter.ID != nil {
		return *filter.ID == dir.ID
	}
	return filter.Name != nil && *filter.Name == dir.Name
}

// EnableExtraDirectory turns a directory on.
func (s *ExtraDirectoryService) EnableExtraDirectory(ctx context.Context, id uint) error {
	return s.setEnable(ctx, id, true)
}

// DisableExtraDirectory turns a directory off.
func (s *ExtraDirectoryService) DisableExtraDirectory(ctx context.Context, id uint) error {
	return s.setEnable(ctx, id, false)
}

func (s *ExtraDirectoryService) setEnable(ctx context.Context, id uint, enable bool) error {
	_, err := s.repo.Update(ctx, models.ExtraDirectoryFields{Enable: &enable}, models.ExtraDirectoryFilter{ID: &id})
	return err
}

// DeleteExtraDirectory removes a non-required directory. Transfer
// references are cleared first, in the same transaction as the delete.
func (s *ExtraDirectoryService) DeleteExtraDirectory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)

		dir, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrExtraDirectoryNotFound
			}
			return err
		}
		if dir.Required {
			configslog.Log.Warn("refusing to delete required extra directory", zap.Uint("id", id), zap.String("name", dir.Name))
			return ErrExtraDirectoryRequired
		}

		if err := s.transfers.ClearExtraDirectory(txCtx, id); err != nil {
			configslog.Log.Error("clearing transfer references failed", zap.Uint("id", id), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrExtraDirectoryDeletionFailed, err)
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("%w: %v", ErrExtraDirectoryDeletionFailed, err)
		}

		configslog.Log.Info("extra directory deleted", zap.Uint("id", id), zap.String("name", dir.Name))
		return nil
	})
}

var _ IExtraDirectoryService = (*ExtraDirectoryService)(nil)
