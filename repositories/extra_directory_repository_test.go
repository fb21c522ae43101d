package repositories

import (
	"context"
	"testing"

	"openvdm.io/openvdm/internal/testdb"
	"openvdm.io/openvdm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedExtraDirectories(t *testing.T, repo IExtraDirectoryRepository) []models.ExtraDirectory {
	t.Helper()
	dirs := []models.ExtraDirectory{
		{Name: "Science", LongName: "Zeta Science Products", DestDir: "Science", Enable: true},
		{Name: "Audio", LongName: "Bridge Audio", DestDir: "Audio", Enable: false},
		{Name: "Transfer_Logs", LongName: "Transfer Logs", DestDir: "OpenVDM/TransferLogs", Required: true, Enable: true},
		{Name: "Vehicle_Video", LongName: "Alpha Vehicle Video", DestDir: "Video", Enable: true, CruiseOrLowering: models.CruiseOrLoweringLowering},
	}
	for i := range dirs {
		require.NoError(t, repo.Create(context.Background(), &dirs[i]))
	}
	return dirs
}

func names(dirs []models.ExtraDirectory) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = d.Name
	}
	return out
}

func TestParseExtraDirectorySort(t *testing.T) {
	a := assert.New(t)
	a.Equal(SortExtraDirectoriesByName, ParseExtraDirectorySort("name"))
	a.Equal(SortExtraDirectoriesByLongName, ParseExtraDirectorySort("longName"))
	a.Equal(SortExtraDirectoriesByName, ParseExtraDirectorySort(""))
	a.Equal(SortExtraDirectoriesByName, ParseExtraDirectorySort("name; DROP TABLE extra_directories"))
}

func TestExtraDirectoryRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewExtraDirectoryRepository(testdb.New(t))
	seedExtraDirectories(t, repo)

	byName, err := repo.FindAll(ctx, models.ExtraDirectoryFilter{}, SortExtraDirectoriesByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audio", "Science", "Transfer_Logs", "Vehicle_Video"}, names(byName))

	byLongName, err := repo.FindAll(ctx, models.ExtraDirectoryFilter{}, SortExtraDirectoriesByLongName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vehicle_Video", "Audio", "Transfer_Logs", "Science"}, names(byLongName))

	unknown, err := repo.FindAll(ctx, models.ExtraDirectoryFilter{}, ExtraDirectorySort("size"))
	require.NoError(t, err)
	assert.Equal(t, byName, unknown)

	required, err := repo.FindAll(ctx, models.ExtraDirectoryFilter{Required: ptr(true)}, SortExtraDirectoriesByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Transfer_Logs"}, names(required))

	enabledCruise, err := repo.FindAll(ctx, models.ExtraDirectoryFilter{
		Enable:           ptr(true),
		CruiseOrLowering: ptr(models.CruiseOrLoweringCruise),
	}, SortExtraDirectoriesByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Science", "Transfer_Logs"}, names(enabledCruise))
}

func TestExtraDirectoryRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewExtraDirectoryRepository(testdb.New(t))
	dirs := seedExtraDirectories(t, repo)

	got, err := repo.FindByID(ctx, dirs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Audio", got.Name)
	assert.False(t, got.Enable)

	got, err = repo.FindByName(ctx, "Vehicle_Video")
	require.NoError(t, err)
	assert.Equal(t, models.CruiseOrLoweringLowering, got.CruiseOrLowering)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.FindAllByID(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Science", "Audio", "Transfer_Logs", "Vehicle_Video"}, names(all))
}

func TestExtraDirectoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewExtraDirectoryRepository(testdb.New(t))
	dirs := seedExtraDirectories(t, repo)

	_, err := repo.Update(ctx, models.ExtraDirectoryFields{LongName: ptr("Ship Audio")}, models.ExtraDirectoryFilter{ID: &dirs[1].ID})
	require.NoError(t, err)
	got, err := repo.FindByID(ctx, dirs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship Audio", got.LongName)
	assert.Equal(t, "Audio", got.Name)

	_, err = repo.Update(ctx, models.ExtraDirectoryFields{Enable: ptr(false)}, models.ExtraDirectoryFilter{})
	assert.ErrorIs(t, err, ErrEmptyFilter)

	_, err = repo.Update(ctx, models.ExtraDirectoryFields{}, models.ExtraDirectoryFilter{ID: &dirs[1].ID})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestExtraDirectoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewExtraDirectoryRepository(testdb.New(t))
	dirs := seedExtraDirectories(t, repo)

	require.NoError(t, repo.Delete(ctx, dirs[0].ID))
	_, err := repo.FindByID(ctx, dirs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, dirs[0].ID), ErrNotFound)
}
