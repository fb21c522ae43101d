package services

import (
	"context"

	"openvdm.io/openvdm/repositories"

	"gorm.io/gorm"
)

// ICruiseDataTransferService is the part of the cruise data transfer
// configuration that extra directories depend on.
type ICruiseDataTransferService interface {
	ClearExtraDirectory(ctx context.Context, extraDirectoryID uint) error
}

// CruiseDataTransferService manages transfer references to extra directories.
type CruiseDataTransferService struct {
	repo repositories.ICruiseDataTransferRepository
}

// NewCruiseDataTransferService creates a new CruiseDataTransferService.
func NewCruiseDataTransferService(db *gorm.DB) ICruiseDataTransferService {
	return &CruiseDataTransferService{repo: repositories.NewCruiseDataTransferRepository(db)}
}

// ClearExtraDirectory removes every reference to the extra directory from
// the transfers' exclusion lists. It joins the caller's transaction when
// ctx carries one.
func (s *CruiseDataTransferService) ClearExtraDirectory(ctx context.Context, extraDirectoryID uint) error {
	return s.repo.ClearExtraDirectory(ctx, extraDirectoryID)
}

var _ ICruiseDataTransferService = (*CruiseDataTransferService)(nil)
