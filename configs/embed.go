package configs

import _ "embed"

// DefaultDashboard is the dashboard document shipped with the binary. It is
// used when no file exists at DASHBOARD_CONFIG.
//
//go:embed dashboard.yaml
var DefaultDashboard []byte
