package models

import (
	"strconv"
	"strings"
)

// CruiseDataTransfer is a configured transfer into the cruise data
// directory. ExcludedDirs lists extra directory IDs, comma separated.
type CruiseDataTransfer struct {
	ID           uint   `gorm:"primaryKey" json:"cruiseDataTransferID"`
	Name         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	LongName     string `gorm:"type:varchar(255)" json:"longName"`
	Enable       bool   `gorm:"not null" json:"enable"`
	Required     bool   `gorm:"not null" json:"required"`
	ExcludedDirs string `gorm:"type:text" json:"excludedDirs"`
}

// ExcludedDirIDs parses ExcludedDirs, skipping malformed entries.
func (t CruiseDataTransfer) ExcludedDirIDs() []uint {
	var ids []uint
	for _, part := range strings.Split(t.ExcludedDirs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func JoinDirIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
