// database/bootstrap.go
package database

import (
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"odisea/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return db
}

// Migrate creates the schema and runs the vineyard-kind backfill. Shared with
// tests, which open their own in-memory databases.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Finca{},
		&entities.Sector{},
		&entities.Grapevine{},
		&entities.Vineyard{},
		&entities.Plot{},
		&entities.TaskList{},
		&entities.Operacion{},
		&entities.TaskInput{},
		&entities.InputCategory{},
		&entities.Input{},
		&entities.Warehouse{},
		&entities.InputStock{},
		&entities.InventoryMovement{},
		&entities.Vessel{},
		&entities.Batch{},
		&entities.VesselActivity{},
	); err != nil {
		return err
	}
	return backfillVineyardKind(db)
}

// backfillVineyardKind sets the explicit kind column on vineyard attribute
// rows that predate it. Legacy data classified conduction vs management by a
// substring of the free-text description; that rule lives on only here, as a
// one-time migration step.
func backfillVineyardKind(db *gorm.DB) error {
	var rows []entities.Vineyard
	if err := db.Where("kind = '' OR kind IS NULL").Find(&rows).Error; err != nil {
		return err
	}
	for _, v := range rows {
		if v.Description == nil {
			continue
		}
		desc := strings.ToLower(*v.Description)
		var kind string
		switch {
		case strings.Contains(desc, "conduction"):
			kind = entities.KindConduction
		case strings.Contains(desc, "management"):
			kind = entities.KindManagement
		default:
			continue
		}
		if err := db.Model(&entities.Vineyard{}).
			Where("vy_id = ?", v.VyID).
			Update("kind", kind).Error; err != nil {
			return err
		}
	}
	return nil
}
