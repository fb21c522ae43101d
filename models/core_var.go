package models

// CoreVar is a named warehouse setting.
type CoreVar struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Value string `gorm:"type:varchar(255)"`
}

const (
	CoreVarShowLoweringComponents = "showLoweringComponents"

	CoreVarValueYes = "Yes"
	CoreVarValueNo  = "No"
)
