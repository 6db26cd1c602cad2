package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("activity_logs")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "user",
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.TextField{Name: "action", Required: true, Max: 100},
			&core.JSONField{Name: "details", MaxSize: 1 << 20},
			&core.AutodateField{Name: "created", OnCreate: true},
		)

		// Audit trail: directors read, nobody edits through the records API.
		collection.ListRule = types.Pointer(`@request.auth.role = "director"`)
		collection.ViewRule = types.Pointer(`@request.auth.role = "director"`)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("activity_logs")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
