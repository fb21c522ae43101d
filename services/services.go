package services

import (
	"openvdm.io/openvdm/pkg/dashboard"

	"gorm.io/gorm"
)

// Services bundles the services shared by the HTTP handlers.
type Services struct {
	ExtraDirectories    IExtraDirectoryService
	Messages            IMessageService
	CruiseDataTransfers ICruiseDataTransferService
	Warehouse           IWarehouseService
	Dashboard           IDashboardService
}

// NewServices builds the service set over db and the dashboard loader.
func NewServices(db *gorm.DB, dashboardLoader *dashboard.Loader) *Services {
	transfers := NewCruiseDataTransferService(db)
	warehouse := NewWarehouseService(db)
	return &Services{
		ExtraDirectories:    NewExtraDirectoryService(db, transfers, warehouse),
		Messages:            NewMessageService(db),
		CruiseDataTransfers: transfers,
		Warehouse:           warehouse,
		Dashboard:           NewDashboardService(dashboardLoader),
	}
}
