package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		departments, err := app.FindCollectionByNameOrId("departments")
		if err != nil {
			return err
		}
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("announcements")

		collection.Fields.Add(
			&core.TextField{Name: "title", Required: true, Max: 300},
			&core.TextField{Name: "body", Required: true, Max: 10000},
			&core.RelationField{
				Name:         "department",
				CollectionId: departments.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "posted_by",
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.BoolField{Name: "pinned"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// Announcements without a department are institution-wide.
		read := `@request.auth.id != ""`
		write := `@request.auth.role = "director" || (department = @request.auth.department && @request.auth.role != "")`
		collection.ListRule = types.Pointer(read)
		collection.ViewRule = types.Pointer(read)
		collection.CreateRule = types.Pointer(write)
		collection.UpdateRule = types.Pointer(write)
		collection.DeleteRule = types.Pointer(write)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("announcements")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
