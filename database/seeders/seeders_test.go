package seeders

import (
	"testing"

	"openvdm.io/openvdm/internal/testdb"
	"openvdm.io/openvdm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCoreVars(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, SeedCoreVars(db))

	var coreVar models.CoreVar
	require.NoError(t, db.Where("name = ?", models.CoreVarShowLoweringComponents).Take(&coreVar).Error)
	assert.Equal(t, models.CoreVarValueNo, coreVar.Value)

	// an operator's value survives reseeding
	require.NoError(t, db.Model(&models.CoreVar{}).
		Where("name = ?", models.CoreVarShowLoweringComponents).
		Update("value", models.CoreVarValueYes).Error)
	require.NoError(t, SeedCoreVars(db))

	var count int64
	require.NoError(t, db.Model(&models.CoreVar{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Where("name = ?", models.CoreVarShowLoweringComponents).Take(&coreVar).Error)
	assert.Equal(t, models.CoreVarValueYes, coreVar.Value)
}

func TestSeedExtraDirectories(t *testing.T) {
	db := testdb.New(t)

	// a pre-existing required row is skipped, not duplicated or reset
	existing := models.ExtraDirectory{
		Name: "Transfer_Logs", LongName: "Custom Logs", DestDir: "OpenVDM/TransferLogs", Required: true,
	}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, SeedExtraDirectories(db))

	var dirs []models.ExtraDirectory
	require.NoError(t, db.Order("id").Find(&dirs).Error)
	require.Len(t, dirs, len(RequiredExtraDirectories))
	for _, dir := range dirs {
		assert.True(t, dir.Required, dir.Name)
	}
	assert.Equal(t, "Custom Logs", dirs[0].LongName)
	assert.False(t, dirs[0].Enable)

	require.NoError(t, SeedExtraDirectories(db))
	var count int64
	require.NoError(t, db.Model(&models.ExtraDirectory{}).Count(&count).Error)
	assert.EqualValues(t, len(RequiredExtraDirectories), count)
}
