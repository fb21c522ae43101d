package models

import "time"

// MessageBodyMaxLength is the number of characters kept from a message body.
const MessageBodyMaxLength = 10000

// Message is a system message shown in the OpenVDM navbar and message log.
// Viewed only ever moves from false to true.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"messageID"`
	Title     string    `gorm:"type:varchar(255);not null" json:"messageTitle"`
	Body      string    `gorm:"type:text" json:"messageBody"`
	Timestamp time.Time `gorm:"not null;index" json:"messageTS"`
	Viewed    bool      `gorm:"not null;index" json:"messageViewed"`
}

type MessageFields struct {
	Title     *string    `json:"messageTitle"`
	Body      *string    `json:"messageBody"`
	Timestamp *time.Time `json:"messageTS"`
	Viewed    *bool      `json:"messageViewed"`
}

func (f MessageFields) IsEmpty() bool {
	return len(f.Columns()) == 0
}

func (f MessageFields) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if f.Title != nil {
		cols["title"] = *f.Title
	}
	if f.Body != nil {
		cols["body"] = *f.Body
	}
	if f.Timestamp != nil {
		cols["timestamp"] = f.Timestamp.UTC()
	}
	if f.Viewed != nil {
		cols["viewed"] = *f.Viewed
	}
	return cols
}

type MessageFilter struct {
	ID     *uint
	Viewed *bool
}

func (f MessageFilter) IsEmpty() bool {
	return len(f.Conditions()) == 0
}

func (f MessageFilter) Conditions() map[string]interface{} {
	conds := map[string]interface{}{}
	if f.ID != nil {
		conds["id"] = *f.ID
	}
	if f.Viewed != nil {
		conds["viewed"] = *f.Viewed
	}
	return conds
}
