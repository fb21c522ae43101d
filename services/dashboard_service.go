package services

import (
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/pkg/dashboard"

	"go.uber.org/zap"
)

// DashboardServiceError dashboard specific service errors.
type DashboardServiceError string

func (e DashboardServiceError) Error() string { return string(e) }

const (
	ErrDashboardTabNotFound DashboardServiceError = "dashboard tab not found"
	ErrDashboardNoTabs      DashboardServiceError = "dashboard has no tabs"
)

// IDashboardService looks up dashboard tabs.
type IDashboardService interface {
	GetTabs() ([]dashboard.Tab, error)
	GetTab(page string) (*dashboard.Tab, error)
	GetDefaultTab() (*dashboard.Tab, error)
}

// DashboardService serves tabs from the loaded dashboard document.
type DashboardService struct {
	loader *dashboard.Loader
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(loader *dashboard.Loader) IDashboardService {
	return &DashboardService{loader: loader}
}

func (s *DashboardService) config() (*dashboard.Config, error) {
	cfg, err := s.loader.Config()
	if err != nil {
		configslog.Log.Error("dashboard config could not be loaded", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// GetTabs returns every tab in document order.
func (s *DashboardService) GetTabs() ([]dashboard.Tab, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return cfg.Tabs(), nil
}

// GetTab returns the tab with the given page slug.
func (s *DashboardService) GetTab(page string) (*dashboard.Tab, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	tab, ok := cfg.TabByPage(page)
	if !ok {
		return nil, ErrDashboardTabNotFound
	}
	return &tab, nil
}

// GetDefaultTab returns the first tab.
func (s *DashboardService) GetDefaultTab() (*dashboard.Tab, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	tab, ok := cfg.DefaultTab()
	if !ok {
		return nil, ErrDashboardNoTabs
	}
	return &tab, nil
}

var _ IDashboardService = (*DashboardService)(nil)
