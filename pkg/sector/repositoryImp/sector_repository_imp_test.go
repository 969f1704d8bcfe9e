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
	"odisea/pkg/sector/repository"
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

func seedFinca(t *testing.T, db *gorm.DB, value string) entities.Finca {
	t.Helper()
	f := entities.Finca{Value: value}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func TestCreateDerivesEtiqueta(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	f := seedFinca(t, db, "Finca A")

	s, err := repo.Create(&entities.Sector{FincaID: f.FincaID, Value: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, "Finca A - Norte", s.Etiqueta)
}

func TestCreateRequiresFinca(t *testing.T) {
	repo := New(newTestDB(t))

	_, err := repo.Create(&entities.Sector{FincaID: 999, Value: "Huérfano"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUpdateRecomputesEtiqueta(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	a := seedFinca(t, db, "Finca A")
	b := seedFinca(t, db, "Finca B")

	s, err := repo.Create(&entities.Sector{FincaID: a.FincaID, Value: "Norte"})
	require.NoError(t, err)

	got, err := repo.Update(s.SectorID, repository.SectorPatch{Value: strPtr("Sur")})
	require.NoError(t, err)
	assert.Equal(t, "Finca A - Sur", got.Etiqueta)

	got, err = repo.Update(s.SectorID, repository.SectorPatch{FincaID: &b.FincaID})
	require.NoError(t, err)
	assert.Equal(t, "Finca B - Sur", got.Etiqueta)
}

func TestDeleteGuardedByPlots(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	f := seedFinca(t, db, "Finca A")

	s, err := repo.Create(&entities.Sector{FincaID: f.FincaID, Value: "Norte"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&entities.Grapevine{GvID: "M-TEMP", Name: "Tempranillo"}).Error)
	require.NoError(t, db.Create(&entities.Plot{
		PlotName: "P1",
		PlotVar:  "M-TEMP",
		PlotGeom: "POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))",
		SectorID: &s.SectorID,
		Active:   true,
	}).Error)

	err = repo.Delete(s.SectorID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))

	require.NoError(t, db.Delete(&entities.Plot{}, "sector_id = ?", s.SectorID).Error)
	require.NoError(t, repo.Delete(s.SectorID))
}

func TestSearchSpansEtiqueta(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	f := seedFinca(t, db, "La Izaga")

	_, err := repo.Create(&entities.Sector{FincaID: f.FincaID, Value: "Norte"})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Sector{FincaID: f.FincaID, Value: "Sur", Description: strPtr("ladera sur")})
	require.NoError(t, err)

	// "iza" only appears in the derived etiqueta.
	got, err := repo.Search("iza")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search("ladera")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sur", got[0].Value)
}

func TestListByFincaAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	a := seedFinca(t, db, "Finca A")
	b := seedFinca(t, db, "Finca B")

	_, err := repo.Create(&entities.Sector{FincaID: a.FincaID, Value: "Norte"})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Sector{FincaID: a.FincaID, Value: "Sur"})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Sector{FincaID: b.FincaID, Value: "Este"})
	require.NoError(t, err)

	got, err := repo.ListByFinca(a.FincaID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.CountByFinca(b.FincaID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.ListByFinca(999)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
