package repositories

import (
	"context"
	"testing"

	"openvdm.io/openvdm/internal/testdb"
	"openvdm.io/openvdm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCruiseDataTransferRepository_ClearExtraDirectory(t *testing.T) {
	ctx := context.Background()
	repo := NewCruiseDataTransferRepository(testdb.New(t))

	transfers := []models.CruiseDataTransfer{
		{Name: "SCS", ExcludedDirs: "3,7,12"},
		{Name: "EM302", ExcludedDirs: "7"},
		{Name: "Knudsen", ExcludedDirs: "12"},
		{Name: "CTD"},
	}
	for i := range transfers {
		require.NoError(t, repo.Create(ctx, &transfers[i]))
	}

	require.NoError(t, repo.ClearExtraDirectory(ctx, 7))

	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "3,12", got[0].ExcludedDirs)
	assert.Equal(t, "", got[1].ExcludedDirs)
	assert.Equal(t, "12", got[2].ExcludedDirs)
	assert.Equal(t, "", got[3].ExcludedDirs)
}

func TestCoreVarRepository_Set(t *testing.T) {
	ctx := context.Background()
	repo := NewCoreVarRepository(testdb.New(t))

	_, err := repo.FindByName(ctx, models.CoreVarShowLoweringComponents)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, models.CoreVarShowLoweringComponents, models.CoreVarValueNo))
	require.NoError(t, repo.Set(ctx, models.CoreVarShowLoweringComponents, models.CoreVarValueYes))

	got, err := repo.FindByName(ctx, models.CoreVarShowLoweringComponents)
	require.NoError(t, err)
	assert.Equal(t, models.CoreVarValueYes, got.Value)
}
