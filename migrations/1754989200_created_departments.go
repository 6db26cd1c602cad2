package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("departments")

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true, Max: 200},
			&core.TextField{Name: "code", Max: 20},
			&core.FileField{
				Name:      "logo",
				MaxSelect: 1,
				MaxSize:   5 << 20,
				MimeTypes: []string{"image/jpeg", "image/png"},
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.ListRule = types.Pointer(`@request.auth.id != ""`)
		collection.ViewRule = types.Pointer(`@request.auth.id != ""`)
		collection.CreateRule = types.Pointer(`@request.auth.role = "director"`)
		collection.UpdateRule = types.Pointer(`@request.auth.role = "director"`)
		collection.DeleteRule = types.Pointer(`@request.auth.role = "director"`)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("departments")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
