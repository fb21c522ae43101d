package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/queryparams"
	"openvdm.io/openvdm/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageServiceError message specific service errors.
type MessageServiceError string

func (e MessageServiceError) Error() string { return string(e) }

const (
	ErrMessageNotFound      MessageServiceError = "message not found"
	ErrMessageInvalidInput  MessageServiceError = "invalid message data"
	ErrMessageTitleRequired MessageServiceError = "message title is required"
	ErrMessageViewedReset   MessageServiceError = "a viewed message can not be marked unread"
)

// IMessageService manages the system message log.
type IMessageService interface {
	ListMessages(ctx context.Context, limit, offset int) ([]models.Message, error)
	CountMessages(ctx context.Context) (int64, error)
	SearchMessages(ctx context.Context, term string, limit, offset int) ([]models.Message, error)
	CountSearchMessages(ctx context.Context, term string) (int64, error)
	ListUnreadMessages(ctx context.Context, limit, offset int) ([]models.Message, error)
	CountUnreadMessages(ctx context.Context) (int64, error)
	SearchUnreadMessages(ctx context.Context, term string, limit, offset int) ([]models.Message, error)
	CountSearchUnreadMessages(ctx context.Context, term string) (int64, error)
	ListNewestMessages(ctx context.Context, n int) ([]models.Message, error)
	GetMessagesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	InsertMessage(ctx context.Context, fields models.MessageFields) (*models.Message, error)
	UpdateMessages(ctx context.Context, fields models.MessageFields, filter models.MessageFilter) error
	MarkMessageViewed(ctx context.Context, id uint) error
	MarkAllMessagesViewed(ctx context.Context) (int64, error)
	DeleteMessages(ctx context.Context, filter models.MessageFilter) (int64, error)
	DeleteAllMessages(ctx context.Context) error
}

// MessageService implements IMessageService.
type MessageService struct {
	repo repositories.IMessageRepository
	now  func() time.Time
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *gorm.DB) IMessageService {
	return &MessageService{
		repo: repositories.NewMessageRepository(db),
		now:  time.Now,
	}
}

// TruncateBody keeps the first MessageBodyMaxLength characters of body.
func TruncateBody(body string) string {
	if len(body) <= models.MessageBodyMaxLength {
		return body
	}
	runes := []rune(body)
	if len(runes) <= models.MessageBodyMaxLength {
		return body
	}
	return string(runes[:models.MessageBodyMaxLength])
}

// --- Lists and counts ---

// ListMessages lists messages newest first.
func (s *MessageService) ListMessages(ctx context.Context, limit, offset int) ([]models.Message, error) {
	return s.repo.FindMessages(ctx, repositories.MessageQuery{Limit: limit, Offset: offset})
}

// CountMessages counts every message.
func (s *MessageService) CountMessages(ctx context.Context) (int64, error) {
	return s.repo.CountMessages(ctx, repositories.MessageQuery{})
}

// SearchMessages lists messages whose title or body contains term.
func (s *MessageService) SearchMessages(ctx context.Context, term string, limit, offset int) ([]models.Message, error) {
	return s.repo.FindMessages(ctx, repositories.MessageQuery{Search: term, Limit: limit, Offset: offset})
}

// CountSearchMessages counts the matches of SearchMessages.
func (s *MessageService) CountSearchMessages(ctx context.Context, term string) (int64, error) {
	return s.repo.CountMessages(ctx, repositories.MessageQuery{Search: term})
}

// ListUnreadMessages lists messages not yet viewed.
func (s *MessageService) ListUnreadMessages(ctx context.Context, limit, offset int) ([]models.Message, error) {
	return s.repo.FindMessages(ctx, repositories.MessageQuery{Unread: true, Limit: limit, Offset: offset})
}

// CountUnreadMessages counts messages not yet viewed.
func (s *MessageService) CountUnreadMessages(ctx context.Context) (int64, error) {
	return s.repo.CountMessages(ctx, repositories.MessageQuery{Unread: true})
}

// SearchUnreadMessages matches unread messages by title, and any message by
// body (see MessageRepository.scoped).
func (s *MessageService) SearchUnreadMessages(ctx context.Context, term string, limit, offset int) ([]models.Message, error) {
	return s.repo.FindMessages(ctx, repositories.MessageQuery{Search: term, Unread: true, Limit: limit, Offset: offset})
}

// CountSearchUnreadMessages counts the matches of SearchUnreadMessages.
func (s *MessageService) CountSearchUnreadMessages(ctx context.Context, term string) (int64, error) {
	return s.repo.CountMessages(ctx, repositories.MessageQuery{Search: term, Unread: true})
}

// ListNewestMessages returns the n most recent unread messages for the navbar.
func (s *MessageService) ListNewestMessages(ctx context.Context, n int) ([]models.Message, error) {
	if n <= 0 {
		return []models.Message{}, nil
	}
	return s.repo.FindMessages(ctx, repositories.MessageQuery{Unread: true, Limit: n})
}

// GetMessagesPaginated picks the list/count pair matching the params.
func (s *MessageService) GetMessagesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	query := repositories.MessageQuery{
		Search:    params.Search,
		Unread:    params.Unread,
		Ascending: params.OrderBy == queryparams.OrderAsc,
		Limit:     params.PerPage,
		Offset:    params.CalculateOffset(),
	}

	total, err := s.repo.CountMessages(ctx, query)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return queryparams.NewPaginatedResult([]models.Message{}, 0, params), nil
	}
	messages, err := s.repo.FindMessages(ctx, query)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(messages, total, params), nil
}

// GetMessage returns nil without an error when no row matches.
func (s *MessageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return msg, err
}

// --- Mutations ---

// InsertMessage stores a new message. Without a caller supplied timestamp
// the message is stamped with the current UTC time and starts unviewed.
func (s *MessageService) InsertMessage(ctx context.Context, fields models.MessageFields) (*models.Message, error) {
	if fields.Title == nil || strings.TrimSpace(*fields.Title) == "" {
		return nil, ErrMessageTitleRequired
	}

	msg := models.Message{Title: *fields.Title}
	if fields.Body != nil {
		msg.Body = TruncateBody(*fields.Body)
	}
	if fields.Timestamp != nil {
		msg.Timestamp = fields.Timestamp.UTC()
		if fields.Viewed != nil {
			msg.Viewed = *fields.Viewed
		}
	} else {
		msg.Timestamp = s.now().UTC()
		msg.Viewed = false
	}

	if err := s.repo.Create(ctx, &msg); err != nil {
		return nil, err
	}
	configslog.Log.Debug("message created", zap.Uint("id", msg.ID), zap.String("title", msg.Title))
	return &msg, nil
}

// UpdateMessages writes fields to every message matching filter. Bodies are
// truncated like on insert and viewed can only be set, never cleared.
func (s *MessageService) UpdateMessages(ctx context.Context, fields models.MessageFields, filter models.MessageFilter) error {
	if fields.Viewed != nil && !*fields.Viewed {
		return ErrMessageViewedReset
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return ErrMessageTitleRequired
	}
	if fields.IsEmpty() || filter.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrMessageInvalidInput)
	}
	if fields.Body != nil {
		body := TruncateBody(*fields.Body)
		fields.Body = &body
	}
	_, err := s.repo.Update(ctx, fields, filter)
	return err
}

// MarkMessageViewed marks one message viewed.
func (s *MessageService) MarkMessageViewed(ctx context.Context, id uint) error {
	return s.repo.MarkViewed(ctx, id)
}

// MarkAllMessagesViewed marks every unread message viewed.
func (s *MessageService) MarkAllMessagesViewed(ctx context.Context) (int64, error) {
	changed, err := s.repo.MarkAllViewed(ctx)
	if err != nil {
		return 0, err
	}
	configslog.Log.Info("messages marked viewed", zap.Int64("count", changed))
	return changed, nil
}

// DeleteMessages removes the messages matching filter.
func (s *MessageService) DeleteMessages(ctx context.Context, filter models.MessageFilter) (int64, error) {
	if filter.IsEmpty() {
		return 0, fmt.Errorf("%w: delete filter is empty, use DeleteAllMessages", ErrMessageInvalidInput)
	}
	return s.repo.Delete(ctx, filter)
}

// DeleteAllMessages empties the message log.
func (s *MessageService) DeleteAllMessages(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	configslog.Log.Warn("all messages deleted")
	return nil
}

var _ IMessageService = (*MessageService)(nil)
