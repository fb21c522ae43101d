package repositories

import (
	"context"
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/textsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageQuery narrows a message list. Limit <= 0 means no limit.
// Lists are newest first unless Ascending is set.
type MessageQuery struct {
	Search    string
	Unread    bool
	Ascending bool
	Limit     int
	Offset    int
}

// IMessageRepository reads and writes system messages.
type IMessageRepository interface {
	FindMessages(ctx context.Context, q MessageQuery) ([]models.Message, error)
	CountMessages(ctx context.Context, q MessageQuery) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	Update(ctx context.Context, fields models.MessageFields, filter models.MessageFilter) (int64, error)
	MarkViewed(ctx context.Context, id uint) error
	MarkAllViewed(ctx context.Context) (int64, error)
	Delete(ctx context.Context, filter models.MessageFilter) (int64, error)
	DeleteAll(ctx context.Context) error
}

// MessageRepository stores system messages.
type MessageRepository struct {
	base IBaseRepository[models.Message]
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *gorm.DB) IMessageRepository {
	return &MessageRepository{base: NewBaseRepository[models.Message](db)}
}

// scoped applies the unread and search conditions of q.
//
// Unread search keeps the historical single expression
// "viewed = ? AND title LIKE ? OR body LIKE ?". AND binds tighter than OR,
// so a body match is returned whatever its read state.
func (r *MessageRepository) scoped(ctx context.Context, q MessageQuery) *gorm.DB {
	db := r.base.DB(ctx).Model(&models.Message{})
	switch {
	case q.Search != "" && q.Unread:
		fragment, args := textsearch.AnyOf(q.Search, "title", "body")
		db = db.Where("viewed = ? AND "+fragment, append([]interface{}{false}, args...)...)
	case q.Search != "":
		fragment, args := textsearch.AnyOf(q.Search, "title", "body")
		db = db.Where(fragment, args...)
	case q.Unread:
		db = db.Where("viewed = ?", false)
	}
	return db
}

// FindMessages lists messages ordered by timestamp, then id.
func (r *MessageRepository) FindMessages(ctx context.Context, q MessageQuery) ([]models.Message, error) {
	var messages []models.Message
	desc := !q.Ascending
	query := r.scoped(ctx, q).Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "timestamp"}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}})
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if err := query.Find(&messages).Error; err != nil {
		configslog.Log.Error("MessageRepository.FindMessages: DB error",
			zap.String("search", q.Search), zap.Bool("unread", q.Unread), zap.Error(err))
		return nil, err
	}
	return messages, nil
}

// CountMessages counts messages matching q, ignoring its paging.
func (r *MessageRepository) CountMessages(ctx context.Context, q MessageQuery) (int64, error) {
	var count int64
	if err := r.scoped(ctx, q).Count(&count).Error; err != nil {
		configslog.Log.Error("MessageRepository.CountMessages: DB error",
			zap.String("search", q.Search), zap.Bool("unread", q.Unread), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// FindByID returns the message with id or ErrNotFound.
func (r *MessageRepository) FindByID(ctx context.Context, id uint) (*models.Message, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.First(ctx, map[string]interface{}{"id": id})
}

// Create inserts a message.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.base.Create(ctx, msg); err != nil {
		configslog.Log.Error("MessageRepository.Create: DB error", zap.String("title", msg.Title), zap.Error(err))
		return err
	}
	return nil
}

// Update writes the set fields to every message matching filter.
func (r *MessageRepository) Update(ctx context.Context, fields models.MessageFields, filter models.MessageFilter) (int64, error) {
	affected, err := r.base.UpdateWhere(ctx, fields.Columns(), filter.Conditions())
	if err != nil && !errors.Is(err, ErrEmptyFilter) && !errors.Is(err, ErrNothingToUpdate) {
		configslog.Log.Error("MessageRepository.Update: DB error", zap.Any("filter", filter.Conditions()), zap.Error(err))
	}
	return affected, err
}

// MarkViewed sets viewed on one message. Already viewed or missing rows are not an error.
func (r *MessageRepository) MarkViewed(ctx context.Context, id uint) error {
	_, err := r.base.UpdateWhere(ctx, map[string]interface{}{"viewed": true}, map[string]interface{}{"id": id})
	return err
}

// MarkAllViewed flips every unviewed message and reports how many changed.
func (r *MessageRepository) MarkAllViewed(ctx context.Context) (int64, error) {
	return r.base.UpdateWhere(ctx, map[string]interface{}{"viewed": true}, map[string]interface{}{"viewed": false})
}

// Delete removes messages matching filter. An empty filter is refused.
func (r *MessageRepository) Delete(ctx context.Context, filter models.MessageFilter) (int64, error) {
	affected, err := r.base.DeleteWhere(ctx, filter.Conditions())
	if err != nil && !errors.Is(err, ErrEmptyFilter) {
		configslog.Log.Error("MessageRepository.Delete: DB error", zap.Any("filter", filter.Conditions()), zap.Error(err))
	}
	return affected, err
}

// DeleteAll empties the messages table.
func (r *MessageRepository) DeleteAll(ctx context.Context) error {
	if err := r.base.Truncate(ctx); err != nil {
		configslog.Log.Error("MessageRepository.DeleteAll: DB error", zap.Error(err))
		return err
	}
	return nil
}

var _ IMessageRepository = (*MessageRepository)(nil)
