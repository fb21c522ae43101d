package models

// CruiseOrLowering scopes an extra directory to the cruise or to lowerings.
type CruiseOrLowering int

const (
	CruiseOrLoweringCruise   CruiseOrLowering = 0
	CruiseOrLoweringLowering CruiseOrLowering = 1
)

func (c CruiseOrLowering) Valid() bool {
	return c == CruiseOrLoweringCruise || c == CruiseOrLoweringLowering
}

func (c CruiseOrLowering) String() string {
	if c == CruiseOrLoweringLowering {
		return "lowering"
	}
	return "cruise"
}

// ExtraDirectory is an additional directory created inside the cruise
// (or lowering) data directory. Required rows are managed by OpenVDM
// itself and can not be deleted.
type ExtraDirectory struct {
	ID               uint             `gorm:"primaryKey" json:"extraDirectoryID"`
	Name             string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	LongName         string           `gorm:"type:varchar(255);not null" json:"longName"`
	DestDir          string           `gorm:"type:varchar(255);not null" json:"destDir"`
	Required         bool             `gorm:"not null;index" json:"required"`
	Enable           bool             `gorm:"not null;index" json:"enable"`
	CruiseOrLowering CruiseOrLowering `gorm:"type:smallint;not null;index" json:"cruiseOrLowering"`
}

// ExtraDirectoryFields carries the columns a caller wants written. Nil
// fields are left untouched.
type ExtraDirectoryFields struct {
	Name             *string           `json:"name" form:"name"`
	LongName         *string           `json:"longName" form:"longName"`
	DestDir          *string           `json:"destDir" form:"destDir"`
	Required         *bool             `json:"required" form:"required"`
	Enable           *bool             `json:"enable" form:"enable"`
	CruiseOrLowering *CruiseOrLowering `json:"cruiseOrLowering" form:"cruiseOrLowering"`
}

func (f ExtraDirectoryFields) IsEmpty() bool {
	return len(f.Columns()) == 0
}

// Columns maps the set fields to their column names.
func (f ExtraDirectoryFields) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if f.Name != nil {
		cols["name"] = *f.Name
	}
	if f.LongName != nil {
		cols["long_name"] = *f.LongName
	}
	if f.DestDir != nil {
		cols["dest_dir"] = *f.DestDir
	}
	if f.Required != nil {
		cols["required"] = *f.Required
	}
	if f.Enable != nil {
		cols["enable"] = *f.Enable
	}
	if f.CruiseOrLowering != nil {
		cols["cruise_or_lowering"] = *f.CruiseOrLowering
	}
	return cols
}

// ExtraDirectory builds a new row from the fields, unset fields keep their zero value.
func (f ExtraDirectoryFields) ExtraDirectory() ExtraDirectory {
	var dir ExtraDirectory
	if f.Name != nil {
		dir.Name = *f.Name
	}
	if f.LongName != nil {
		dir.LongName = *f.LongName
	}
	if f.DestDir != nil {
		dir.DestDir = *f.DestDir
	}
	if f.Required != nil {
		dir.Required = *f.Required
	}
	if f.Enable != nil {
		dir.Enable = *f.Enable
	}
	if f.CruiseOrLowering != nil {
		dir.CruiseOrLowering = *f.CruiseOrLowering
	}
	return dir
}

// ExtraDirectoryFilter selects rows for update/delete. All set fields are ANDed.
type ExtraDirectoryFilter struct {
	ID               *uint
	Name             *string
	Required         *bool
	Enable           *bool
	CruiseOrLowering *CruiseOrLowering
}

func (f ExtraDirectoryFilter) IsEmpty() bool {
	return len(f.Conditions()) == 0
}

func (f ExtraDirectoryFilter) Conditions() map[string]interface{} {
	conds := map[string]interface{}{}
	if f.ID != nil {
		conds["id"] = *f.ID
	}
	if f.Name != nil {
		conds["name"] = *f.Name
	}
	if f.Required != nil {
		conds["required"] = *f.Required
	}
	if f.Enable != nil {
		conds["enable"] = *f.Enable
	}
	if f.CruiseOrLowering != nil {
		conds["cruise_or_lowering"] = *f.CruiseOrLowering
	}
	return conds
}
