package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		departments, err := app.FindCollectionByNameOrId("departments")
		if err != nil {
			return err
		}
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection.Fields.Add(
			&core.SelectField{
				Name:      "role",
				Values:    []string{"director", "hod", "department_admin"},
				MaxSelect: 1,
			},
			&core.RelationField{
				Name:         "department",
				CollectionId: departments.Id,
				MaxSelect:    1,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}
		collection.Fields.RemoveByName("role")
		collection.Fields.RemoveByName("department")
		return app.Save(collection)
	})
}
