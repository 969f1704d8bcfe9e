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

func TestCreateValidatesKind(t *testing.T) {
	repo := New(newTestDB(t))

	_, err := repo.Create(&entities.Vineyard{VyID: "ESP", Value: "Espaldera", Kind: entities.KindConduction})
	require.NoError(t, err)

	_, err = repo.Create(&entities.Vineyard{VyID: "XXX", Value: "Rara", Kind: "pruning"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestListByKind(t *testing.T) {
	repo := New(newTestDB(t))

	_, err := repo.Create(&entities.Vineyard{VyID: "ESP", Value: "Espaldera", Kind: entities.KindConduction})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Vineyard{VyID: "VAS", Value: "Vaso", Kind: entities.KindConduction})
	require.NoError(t, err)
	_, err = repo.Create(&entities.Vineyard{VyID: "ECO", Value: "Ecológico", Kind: entities.KindManagement})
	require.NoError(t, err)

	conduction, err := repo.ListByKind(entities.KindConduction)
	require.NoError(t, err)
	assert.Len(t, conduction, 2)

	management, err := repo.ListByKind(entities.KindManagement)
	require.NoError(t, err)
	assert.Len(t, management, 1)

	_, err = repo.ListByKind("pruning")
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestDeleteGuardedByPlots(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)

	_, err := repo.Create(&entities.Vineyard{VyID: "ESP", Value: "Espaldera", Kind: entities.KindConduction})
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Grapevine{GvID: "M-TEMP", Name: "Tempranillo"}).Error)
	require.NoError(t, db.Create(&entities.Plot{
		PlotName:       "P1",
		PlotVar:        "M-TEMP",
		PlotConduction: strPtr("ESP"),
		PlotGeom:       "POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))",
		Active:         true,
	}).Error)

	assert.True(t, apperr.Is(repo.Delete("ESP"), apperr.Conflict))

	require.NoError(t, db.Delete(&entities.Plot{}, "plot_name = ?", "P1").Error)
	require.NoError(t, repo.Delete("ESP"))
}

func TestKindBackfillFromDescription(t *testing.T) {
	db := newTestDB(t)

	// Legacy rows carry the kind only in the free-text description.
	require.NoError(t, db.Create(&entities.Vineyard{VyID: "OLD1", Value: "Espaldera", Description: strPtr("trellis conduction system")}).Error)
	require.NoError(t, db.Create(&entities.Vineyard{VyID: "OLD2", Value: "Ecológico", Description: strPtr("organic management type")}).Error)
	require.NoError(t, db.Create(&entities.Vineyard{VyID: "OLD3", Value: "Sin pista"}).Error)

	require.NoError(t, database.Migrate(db))

	// Fresh destination per lookup; reusing one struct would make GORM
	// compound the previous primary key into the next query.
	var v1, v2, v3 entities.Vineyard
	require.NoError(t, db.First(&v1, "vy_id = ?", "OLD1").Error)
	assert.Equal(t, entities.KindConduction, v1.Kind)
	require.NoError(t, db.First(&v2, "vy_id = ?", "OLD2").Error)
	assert.Equal(t, entities.KindManagement, v2.Kind)
	require.NoError(t, db.First(&v3, "vy_id = ?", "OLD3").Error)
	assert.Empty(t, v3.Kind)
}
