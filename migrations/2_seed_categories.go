package migrations

import (
	"github.com/go-pg/migrations/v8"

	"github.com/playlizt-io/playlizt-server/models"
)

var defaultCategories = []struct {
	name        string
	description string
}{
	{"EDUCATION", "Tutorials, lectures and explainers"},
	{"ENTERTAINMENT", "Shows, sketches and general entertainment"},
	{"TECHNOLOGY", "Tech reviews, programming and gadgets"},
	{"MUSIC", "Music videos, covers and performances"},
	{"SPORTS", "Matches, highlights and fitness"},
	{"NEWS", "News reports and current events"},
	{"GAMING", "Gameplay, streams and esports"},
	{"LIFESTYLE", "Vlogs, fashion and daily life"},
	{"COOKING", "Recipes and food"},
	{"TRAVEL", "Trips, guides and destinations"},
}

func SeedCategories(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		for _, c := range defaultCategories {
			category := &models.Category{
				Name:        c.name,
				Description: c.description,
			}
			_, err := db.Model(category).
				OnConflict("(name) DO NOTHING").
				Insert()
			if err != nil {
				return err
			}
		}
		return nil
	}, func(db migrations.DB) error {
		_, err := db.Exec(`DELETE FROM category`)
		return err
	})
}
