package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"openvdm.io/openvdm/internal/testdb"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/dashboard"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, dashboardPath string) (*fiber.App, *services.Services) {
	t.Helper()
	svcs := services.NewServices(testdb.New(t), dashboard.NewLoader(dashboardPath))
	return NewApp(svcs), svcs
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func TestRootRedirectsToDashboard(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestDashboardPages(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>Lowerings</h1>")
	assert.Contains(t, body, `id="map_placeholder"`)
	assert.Contains(t, body, "/static/js/leaflet.js")

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/weather", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Meteorological Sensor")

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/nope", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardUnknownViewFailsInRenderer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {title: Custom, page: custom, view: missing}\n"), 0o644))
	app, _ := newTestApp(t, path)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/custom", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "could not be rendered")
}

func TestDashboardAPI(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tabs []dashboard.Tab
	require.NoError(t, json.Unmarshal([]byte(body), &tabs))
	require.Len(t, tabs, 4)
	assert.Equal(t, "vehicle", tabs[0].Page)
}

func TestMessageAPI(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	req := httptest.NewRequest(http.MethodPost, "/api/messages",
		strings.NewReader(`{"messageTitle":"Transfer failed","messageBody":"SCS source unreachable"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body := do(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Message
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.NotZero(t, created.ID)
	assert.False(t, created.Viewed)

	req = httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(`{"messageBody":"no title"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/messages/unread", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var unread struct {
		Count    int64            `json:"count"`
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &unread))
	assert.EqualValues(t, 1, unread.Count)
	require.Len(t, unread.Messages, 1)
	assert.Equal(t, "Transfer failed", unread.Messages[0].Title)
}

func TestMessagePages(t *testing.T) {
	app, svcs := newTestApp(t, "../configs/dashboard.yaml")
	ctx := context.Background()
	for _, title := range []string{"winch fault", "gyro drift"} {
		title := title
		_, err := svcs.Messages.InsertMessage(ctx, models.MessageFields{Title: &title})
		require.NoError(t, err)
	}

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/config/messages?search=winch", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "winch fault")
	assert.NotContains(t, body, "gyro drift")

	resp, _ = do(t, app, postForm("/config/messages/viewed", nil))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	unread, err := svcs.Messages.CountUnreadMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/config/messages/delete/999", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, postForm("/config/messages/delete", nil))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	total, err := svcs.Messages.CountMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestExtraDirectoryPages(t *testing.T) {
	app, svcs := newTestApp(t, "../configs/dashboard.yaml")
	ctx := context.Background()

	resp, _ := do(t, app, postForm("/config/extradirectories/create", url.Values{
		"name":             {"Science"},
		"longName":         {"Science Products"},
		"destDir":          {"Science"},
		"cruiseOrLowering": {"0"},
		"enable":           {"on"},
	}))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	dir, err := svcs.ExtraDirectories.GetExtraDirectoryByName(ctx, "Science")
	require.NoError(t, err)
	require.NotNil(t, dir)
	assert.True(t, dir.Enable)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/config/extradirectories?sort=longName", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Science Products")

	resp, _ = do(t, app, postForm("/config/extradirectories/disable/"+itoa(dir.ID), nil))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	dir, err = svcs.ExtraDirectories.GetExtraDirectory(ctx, dir.ID)
	require.NoError(t, err)
	assert.False(t, dir.Enable)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/extradirectories", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var dump []models.ExtraDirectory
	require.NoError(t, json.Unmarshal([]byte(body), &dump))
	require.Len(t, dump, 1)
	assert.Equal(t, "Science", dump[0].Name)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/config/extradirectories/delete/"+itoa(dir.ID), nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/extradirectories/"+itoa(dir.ID), nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateExtraDirectoryBlankFormKeepsRow(t *testing.T) {
	app, svcs := newTestApp(t, "../configs/dashboard.yaml")
	ctx := context.Background()

	dir, err := svcs.ExtraDirectories.InsertExtraDirectory(ctx, models.ExtraDirectoryFields{
		Name: strPtr("Audio"), LongName: strPtr("Bridge Audio"), DestDir: strPtr("Audio"),
	})
	require.NoError(t, err)

	resp, _ := do(t, app, postForm("/config/extradirectories/update/"+itoa(dir.ID), url.Values{
		"name": {""}, "longName": {""}, "destDir": {""}, "cruiseOrLowering": {"0"},
	}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/config/extradirectories/update/"+itoa(dir.ID), resp.Header.Get(fiber.HeaderLocation))

	got, err := svcs.ExtraDirectories.GetExtraDirectory(ctx, dir.ID)
	require.NoError(t, err)
	assert.Equal(t, "Audio", got.Name)
	assert.Equal(t, "Bridge Audio", got.LongName)
}

func TestDeleteRequiredExtraDirectoryConflicts(t *testing.T) {
	app, svcs := newTestApp(t, "../configs/dashboard.yaml")
	ctx := context.Background()

	dir, err := svcs.ExtraDirectories.InsertExtraDirectory(ctx, models.ExtraDirectoryFields{
		Name: strPtr("Transfer_Logs"), LongName: strPtr("Transfer Logs"), DestDir: strPtr("OpenVDM/TransferLogs"),
		Required: boolPtr(true),
	})
	require.NoError(t, err)

	resp, body := do(t, app, httptest.NewRequest(http.MethodDelete, "/config/extradirectories/delete/"+itoa(dir.ID), nil))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, services.ErrExtraDirectoryRequired.Error())

	still, err := svcs.ExtraDirectories.GetExtraDirectory(ctx, dir.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestFlashMessageSurvivesRedirect(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	resp, _ := do(t, app, postForm("/config/extradirectories/create", url.Values{"name": {"No Spaces"}}))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, resp.Header.Get(fiber.HeaderLocation), nil)
	for _, cookie := range resp.Cookies() {
		req.AddCookie(cookie)
	}
	resp, body := do(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Extra directory could not be created")
	assert.Contains(t, body, `value="No Spaces"`)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, "../configs/dashboard.yaml")

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, body := do(t, app, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"resource not found"}`, body)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
