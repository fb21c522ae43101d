package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"openvdm.io/openvdm/internal/testdb"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T) *MessageService {
	t.Helper()
	return NewMessageService(testdb.New(t)).(*MessageService)
}

func insertMessage(t *testing.T, svc IMessageService, title, body string, ts time.Time, viewed bool) *models.Message {
	t.Helper()
	msg, err := svc.InsertMessage(context.Background(), models.MessageFields{
		Title: &title, Body: &body, Timestamp: &ts, Viewed: &viewed,
	})
	require.NoError(t, err)
	return msg
}

func TestInsertMessage_StampsTimestamp(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)

	before := time.Now().UTC().Truncate(time.Second)
	msg, err := svc.InsertMessage(ctx, models.MessageFields{Title: ptr("Transfer complete"), Viewed: ptr(true)})
	require.NoError(t, err)
	after := time.Now().UTC()

	stored, err := svc.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Viewed)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())
	assert.False(t, msg.Timestamp.Before(before))
	assert.False(t, msg.Timestamp.After(after))
	assert.WithinDuration(t, time.Now().UTC(), stored.Timestamp, time.Second)
}

func TestInsertMessage_KeepsCallerTimestamp(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	msg := insertMessage(t, svc, "Imported", "from shipboard log", ts, true)

	stored, err := svc.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Viewed)
	assert.True(t, ts.Equal(stored.Timestamp))
}

func TestInsertMessage_FixedClock(t *testing.T) {
	svc := newMessageService(t)
	fixed := time.Date(2025, 6, 30, 8, 15, 0, 0, time.FixedZone("HST", -10*3600))
	svc.now = func() time.Time { return fixed }

	msg, err := svc.InsertMessage(context.Background(), models.MessageFields{Title: ptr("Clock")})
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), msg.Timestamp)
}

func TestInsertMessage_RequiresTitle(t *testing.T) {
	svc := newMessageService(t)
	_, err := svc.InsertMessage(context.Background(), models.MessageFields{Body: ptr("no title")})
	assert.ErrorIs(t, err, ErrMessageTitleRequired)

	_, err = svc.InsertMessage(context.Background(), models.MessageFields{Title: ptr("   ")})
	assert.ErrorIs(t, err, ErrMessageTitleRequired)
}

func TestInsertMessage_TruncatesBody(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"under limit", strings.Repeat("a", models.MessageBodyMaxLength-1), models.MessageBodyMaxLength - 1},
		{"at limit", strings.Repeat("a", models.MessageBodyMaxLength), models.MessageBodyMaxLength},
		{"over limit", strings.Repeat("a", models.MessageBodyMaxLength+500), models.MessageBodyMaxLength},
		{"multibyte over limit", strings.Repeat("é", models.MessageBodyMaxLength+1), models.MessageBodyMaxLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := svc.InsertMessage(ctx, models.MessageFields{Title: ptr(tt.name), Body: ptr(tt.body)})
			require.NoError(t, err)

			stored, err := svc.GetMessage(ctx, msg.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, len([]rune(stored.Body)))
			if len([]rune(tt.body)) <= models.MessageBodyMaxLength {
				assert.Equal(t, tt.body, stored.Body)
			}
		})
	}
}

func TestMarkMessageViewed_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	msg := insertMessage(t, svc, "Gyro", "drift", time.Now().UTC(), false)

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.MarkMessageViewed(ctx, msg.ID))
		stored, err := svc.GetMessage(ctx, msg.ID)
		require.NoError(t, err)
		assert.True(t, stored.Viewed)
	}
}

func TestMarkAllMessagesViewed(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	now := time.Now().UTC()
	insertMessage(t, svc, "one", "", now, false)
	insertMessage(t, svc, "two", "", now.Add(time.Second), true)
	insertMessage(t, svc, "three", "", now.Add(2*time.Second), false)

	changed, err := svc.MarkAllMessagesViewed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	unread, err := svc.CountUnreadMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	changed, err = svc.MarkAllMessagesViewed(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestUpdateMessages(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	msg := insertMessage(t, svc, "old", "body", time.Now().UTC(), true)

	err := svc.UpdateMessages(ctx, models.MessageFields{Viewed: ptr(false)}, models.MessageFilter{ID: &msg.ID})
	assert.ErrorIs(t, err, ErrMessageViewedReset)

	err = svc.UpdateMessages(ctx, models.MessageFields{Title: ptr("new")}, models.MessageFilter{})
	assert.ErrorIs(t, err, ErrMessageInvalidInput)

	long := strings.Repeat("b", models.MessageBodyMaxLength+1)
	require.NoError(t, svc.UpdateMessages(ctx,
		models.MessageFields{Title: ptr("new"), Body: &long},
		models.MessageFilter{ID: &msg.ID}))

	stored, err := svc.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Title)
	assert.Len(t, stored.Body, models.MessageBodyMaxLength)
	assert.True(t, stored.Viewed)
}

func TestSearchAndCounts(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	now := time.Now().UTC()
	insertMessage(t, svc, "winch fault", "tension high", now, false)
	insertMessage(t, svc, "gyro", "winch log attached", now.Add(time.Second), true)
	insertMessage(t, svc, "gyro drift", "check heading", now.Add(2*time.Second), false)

	total, err := svc.CountMessages(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	found, err := svc.SearchMessages(ctx, "winch", 0, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	count, err := svc.CountSearchMessages(ctx, "winch")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// the viewed "gyro" message matches through its body
	unread, err := svc.SearchUnreadMessages(ctx, "winch", 0, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
	unreadCount, err := svc.CountSearchUnreadMessages(ctx, "winch")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unreadCount)

	unreadOnly, err := svc.ListUnreadMessages(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, "gyro drift", unreadOnly[0].Title)

	newest, err := svc.ListNewestMessages(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, newest, 2)

	none, err := svc.ListNewestMessages(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetMessagesPaginated(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		insertMessage(t, svc, "msg", "", now.Add(time.Duration(i)*time.Second), i%2 == 0)
	}

	page, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Meta.TotalItems)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.Len(t, page.Data, 2)

	unread, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{Unread: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread.Meta.TotalItems)
	assert.Equal(t, queryparams.DefaultPerPage, unread.Meta.PerPage)

	empty, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{Search: "nothing"})
	require.NoError(t, err)
	assert.Zero(t, empty.Meta.TotalItems)
	assert.Empty(t, empty.Data)
}

func TestGetMessagesPaginated_Order(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	now := time.Now().UTC()
	insertMessage(t, svc, "first", "", now, false)
	insertMessage(t, svc, "second", "", now.Add(time.Second), false)
	insertMessage(t, svc, "third", "", now.Add(2*time.Second), false)

	titles := func(r *queryparams.PaginatedResult) []string {
		var out []string
		for _, m := range r.Data.([]models.Message) {
			out = append(out, m.Title)
		}
		return out
	}

	newest, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, titles(newest))

	oldest, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{OrderBy: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, titles(oldest))

	bogus, err := svc.GetMessagesPaginated(ctx, queryparams.ListParams{OrderBy: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, titles(newest), titles(bogus))
}

func TestDeleteMessages(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService(t)
	now := time.Now().UTC()
	first := insertMessage(t, svc, "one", "", now, false)
	insertMessage(t, svc, "two", "", now, true)
	insertMessage(t, svc, "three", "", now, true)

	_, err := svc.DeleteMessages(ctx, models.MessageFilter{})
	assert.ErrorIs(t, err, ErrMessageInvalidInput)

	deleted, err := svc.DeleteMessages(ctx, models.MessageFilter{ID: &first.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	deleted, err = svc.DeleteMessages(ctx, models.MessageFilter{Viewed: ptr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	insertMessage(t, svc, "four", "", now, false)
	require.NoError(t, svc.DeleteAllMessages(ctx))
	total, err := svc.CountMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	missing, err := svc.GetMessage(ctx, first.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "", TruncateBody(""))
	short := strings.Repeat("x", 10)
	assert.Equal(t, short, TruncateBody(short))
	assert.Len(t, []rune(TruncateBody(strings.Repeat("ü", models.MessageBodyMaxLength*2))), models.MessageBodyMaxLength)
}
