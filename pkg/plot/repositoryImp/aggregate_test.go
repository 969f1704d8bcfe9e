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
	"odisea/pkg/plot/filters"
	"odisea/pkg/plot/repository"
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

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

const testGeom = "POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))"

// seed builds two fincas with one sector each, the grapevine and attribute
// catalogs, and four plots: two fully referenced, one without sector, one
// archived.
func seed(t *testing.T, db *gorm.DB) repository.PlotRepository {
	t.Helper()

	fincaA := entities.Finca{Value: "Finca A"}
	fincaB := entities.Finca{Value: "Finca B"}
	require.NoError(t, db.Create(&fincaA).Error)
	require.NoError(t, db.Create(&fincaB).Error)

	norte := entities.Sector{FincaID: fincaA.FincaID, Value: "Norte", Etiqueta: "Finca A - Norte"}
	sur := entities.Sector{FincaID: fincaB.FincaID, Value: "Sur", Etiqueta: "Finca B - Sur"}
	require.NoError(t, db.Create(&norte).Error)
	require.NoError(t, db.Create(&sur).Error)

	for _, g := range []entities.Grapevine{
		{GvID: "M-TEMP", Name: "Tempranillo"},
		{GvID: "M-GARN", Name: "Garnacha"},
		{GvID: "PI-110R", Name: "110 Richter"},
	} {
		require.NoError(t, db.Create(&g).Error)
	}
	for _, v := range []entities.Vineyard{
		{VyID: "ESP", Value: "Espaldera", Kind: entities.KindConduction},
		{VyID: "ECO", Value: "Ecológico", Kind: entities.KindManagement},
	} {
		require.NoError(t, db.Create(&v).Error)
	}

	repo := New(db)

	_, err := repo.Create(&entities.Plot{
		PlotName:        "Parcela Norte 1",
		PlotVar:         "M-TEMP",
		PlotRootstock:   strPtr("PI-110R"),
		PlotConduction:  strPtr("ESP"),
		PlotManagement:  strPtr("ECO"),
		PlotImplantYear: intPtr(2015),
		PlotGeom:        testGeom,
		PlotArea:        f64Ptr(2.5),
		SectorID:        &norte.SectorID,
		Active:          true,
	})
	require.NoError(t, err)

	_, err = repo.Create(&entities.Plot{
		PlotName:        "Parcela Sur 1",
		PlotVar:         "M-GARN",
		PlotImplantYear: intPtr(2020),
		PlotGeom:        testGeom,
		PlotArea:        f64Ptr(1.0),
		SectorID:        &sur.SectorID,
		Active:          true,
	})
	require.NoError(t, err)

	_, err = repo.Create(&entities.Plot{
		PlotName: "Suelta",
		PlotVar:  "M-TEMP",
		PlotGeom: testGeom,
		Active:   true,
	})
	require.NoError(t, err)

	vieja, err := repo.Create(&entities.Plot{
		PlotName: "Vieja",
		PlotVar:  "M-GARN",
		PlotGeom: testGeom,
		PlotArea: f64Ptr(3.0),
		SectorID: &norte.SectorID,
		Active:   true,
	})
	require.NoError(t, err)
	_, err = repo.Archive(vieja.PlotID)
	require.NoError(t, err)

	return repo
}

func TestListWithDataNestedRefs(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{ActiveOnly: true})
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.TotalCount)
	assert.EqualValues(t, 3, out.FilteredCount)
	require.Len(t, out.Plots, 3)

	byName := map[string]int{}
	for i, p := range out.Plots {
		byName[p.PlotName] = i
	}
	norte1 := out.Plots[byName["Parcela Norte 1"]]
	require.NotNil(t, norte1.Variety)
	assert.Equal(t, "Tempranillo", norte1.Variety.Name)
	require.NotNil(t, norte1.Rootstock)
	assert.Equal(t, "PI-110R", norte1.Rootstock.GvID)
	require.NotNil(t, norte1.Conduction)
	assert.Equal(t, "Espaldera", norte1.Conduction.Value)
	require.NotNil(t, norte1.Management)
	assert.Equal(t, "Ecológico", norte1.Management.Value)
	require.NotNil(t, norte1.Sector)
	assert.Equal(t, "Norte", norte1.Sector.Value)
	require.NotNil(t, norte1.Sector.Finca)
	assert.Equal(t, "Finca A", norte1.Sector.Finca.Value)

	sur1 := out.Plots[byName["Parcela Sur 1"]]
	assert.Nil(t, sur1.Rootstock)
	assert.Nil(t, sur1.Conduction)
	assert.Nil(t, sur1.Management)

	// A plot without a sector still shows up, with a nil sector object.
	suelta := out.Plots[byName["Suelta"]]
	assert.Nil(t, suelta.Sector)
}

func TestListWithDataTotalIgnoresFilters(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{
		ActiveOnly: true,
		MinArea:    f64Ptr(2.0),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.TotalCount)
	assert.EqualValues(t, 1, out.FilteredCount)
	require.Len(t, out.Plots, 1)
	assert.Equal(t, "Parcela Norte 1", out.Plots[0].PlotName)
	assert.LessOrEqual(t, out.FilteredCount, out.TotalCount)
}

func TestListWithDataTextFilterOnFinca(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{
		ActiveOnly:  true,
		FilterField: "finca_name",
		FilterValue: "finca a",
	})
	require.NoError(t, err)

	require.Len(t, out.Plots, 1)
	assert.Equal(t, "Parcela Norte 1", out.Plots[0].PlotName)
}

func TestListWithDataUnknownFilterFieldIgnored(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{
		ActiveOnly:  true,
		FilterField: "no_such_field",
		FilterValue: "whatever",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.FilteredCount)
}

func TestListWithDataVarietyAndYearFilters(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{
		ActiveOnly: true,
		VarietyIDs: []string{"M-GARN"},
	})
	require.NoError(t, err)
	require.Len(t, out.Plots, 1)
	assert.Equal(t, "Parcela Sur 1", out.Plots[0].PlotName)

	out, err = repo.ListWithData(filters.Filters{
		ActiveOnly:      true,
		ImplantYearFrom: intPtr(2016),
		ImplantYearTo:   intPtr(2024),
	})
	require.NoError(t, err)
	require.Len(t, out.Plots, 1)
	assert.Equal(t, "Parcela Sur 1", out.Plots[0].PlotName)
}

func TestListWithDataInactiveIncludedWhenRequested(t *testing.T) {
	repo := seed(t, newTestDB(t))

	out, err := repo.ListWithData(filters.Filters{ActiveOnly: false})
	require.NoError(t, err)
	assert.EqualValues(t, 4, out.TotalCount)
	assert.EqualValues(t, 4, out.FilteredCount)
}

func TestMetadataPartitions(t *testing.T) {
	repo := seed(t, newTestDB(t))

	meta, err := repo.Metadata()
	require.NoError(t, err)

	require.Len(t, meta.Varieties, 2)
	for _, v := range meta.Varieties {
		assert.Contains(t, []string{"M-TEMP", "M-GARN"}, v.GvID)
	}
	require.Len(t, meta.Rootstocks, 1)
	assert.Equal(t, "PI-110R", meta.Rootstocks[0].GvID)

	require.Len(t, meta.ConductionSystems, 1)
	assert.Equal(t, "ESP", meta.ConductionSystems[0].VyID)
	require.Len(t, meta.ManagementTypes, 1)
	assert.Equal(t, "ECO", meta.ManagementTypes[0].VyID)

	assert.Len(t, meta.Sectores, 2)
	assert.Len(t, meta.Fincas, 2)
}

func TestCreateRejectsUnknownVariety(t *testing.T) {
	db := newTestDB(t)
	repo := seed(t, db)

	_, err := repo.Create(&entities.Plot{
		PlotName: "Fantasma",
		PlotVar:  "M-NOPE",
		PlotGeom: testGeom,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))

	// Rollback left no trace.
	var n int64
	require.NoError(t, db.Model(&entities.Plot{}).Where("plot_name = ?", "Fantasma").Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestCreateNormalizesGeometry(t *testing.T) {
	db := newTestDB(t)
	repo := seed(t, db)

	p, err := repo.Create(&entities.Plot{
		PlotName: "Rara",
		PlotVar:  "M-TEMP",
		PlotGeom: "SRID=4326;polygon(( 0 0 ,0 1, 1 1 , 1 0,0 0 ))",
	})
	require.NoError(t, err)
	assert.Equal(t, testGeom, p.PlotGeom)

	_, err = repo.Create(&entities.Plot{
		PlotName: "Rota",
		PlotVar:  "M-TEMP",
		PlotGeom: "POLYGON((0 0, 1 1))",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestArchiveActivateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := seed(t, db)

	out, err := repo.ListWithData(filters.Filters{ActiveOnly: true})
	require.NoError(t, err)
	before := out.TotalCount

	var p entities.Plot
	require.NoError(t, db.First(&p, "plot_name = ?", "Suelta").Error)

	archived, err := repo.Archive(p.PlotID)
	require.NoError(t, err)
	assert.False(t, archived.Active)

	out, err = repo.ListWithData(filters.Filters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, before-1, out.TotalCount)

	restored, err := repo.Activate(p.PlotID)
	require.NoError(t, err)
	assert.True(t, restored.Active)
}

func TestUpdateValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	repo := seed(t, db)

	var p entities.Plot
	require.NoError(t, db.First(&p, "plot_name = ?", "Suelta").Error)

	_, err := repo.Update(p.PlotID, repository.PlotPatch{PlotVar: strPtr("M-NOPE")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))

	got, err := repo.Update(p.PlotID, repository.PlotPatch{
		PlotRootstock: strPtr("PI-110R"),
		PlotArea:      f64Ptr(0.7),
	})
	require.NoError(t, err)
	require.NotNil(t, got.PlotRootstock)
	assert.Equal(t, "PI-110R", *got.PlotRootstock)
	require.NotNil(t, got.PlotArea)
	assert.Equal(t, 0.7, *got.PlotArea)
}
