// Package migrations holds the versioned gormigrate migrations applied at
// startup.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/pimsph/registry-backend/internal/precincts"
	"github.com/pimsph/registry-backend/internal/refdata"
	"github.com/pimsph/registry-backend/internal/tags"
	"github.com/pimsph/registry-backend/internal/voters"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: nil db")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202508200001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&refdata.District{},
					&refdata.Citymun{},
					&refdata.Barangay{},
					&voters.Voter{},
					&tags.Tag{},
					&tags.VoterTag{},
					&precincts.ClusteredPrecinct{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"brgy_clustered_precincts_prec", "voter_tags", "tags",
					"voters", "voter_barangay", "voter_city", "voter_district",
				)
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	return nil
}
