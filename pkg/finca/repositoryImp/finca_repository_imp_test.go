package repositoryImp

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"odisea/database"
	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/finca/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateAndDuplicate(t *testing.T) {
	repo := New(newTestDB(t))

	f, err := repo.Create(&entities.Finca{Value: "La Izaga"})
	require.NoError(t, err)
	assert.NotZero(t, f.FincaID)

	_, err = repo.Create(&entities.Finca{Value: "La Izaga"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.DuplicateKey))
}

func TestDeleteGuardedBySectores(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)

	f, err := repo.Create(&entities.Finca{Value: "Con Sectores"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Sector{FincaID: f.FincaID, Value: "Único", Etiqueta: "Con Sectores - Único"}).Error)

	err = repo.Delete(f.FincaID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))

	// Still there.
	_, err = repo.GetByID(f.FincaID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&entities.Sector{}, "finca_id = ?", f.FincaID).Error)
	require.NoError(t, repo.Delete(f.FincaID))

	_, err = repo.GetByID(f.FincaID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestSearchMatchesValueAndDescription(t *testing.T) {
	repo := New(newTestDB(t))

	_, err := repo.Create(&entities.Finca{Value: "La Izaga"})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Finca{Value: "El Llano", Description: strPtr("junto a La Izaga")})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Finca{Value: "Otra"})
	require.NoError(t, err)

	// Case-insensitive substring over value and description.
	got, err := repo.Search("iza")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search("IZAGA")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search("nada")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateCascadesEtiqueta(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)

	f, err := repo.Create(&entities.Finca{Value: "Vieja"})
	require.NoError(t, err)
	s := entities.Sector{FincaID: f.FincaID, Value: "Norte", Etiqueta: "Vieja - Norte"}
	require.NoError(t, db.Create(&s).Error)

	_, err = repo.Update(f.FincaID, repository.FincaPatch{Value: strPtr("Nueva")})
	require.NoError(t, err)

	var got entities.Sector
	require.NoError(t, db.First(&got, "sector_id = ?", s.SectorID).Error)
	assert.Equal(t, "Nueva - Norte", got.Etiqueta)
}

func TestCount(t *testing.T) {
	repo := New(newTestDB(t))
	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = repo.Create(&entities.Finca{Value: "Una"})
	require.NoError(t, err)
	n, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
