package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("event_photos")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "event",
				CollectionId:  events.Id,
				MaxSelect:     1,
				Required:      true,
				CascadeDelete: true,
			},
			&core.FileField{
				Name:      "photo",
				MaxSelect: 1,
				MaxSize:   10 << 20,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
				Required:  true,
			},
			&core.TextField{Name: "caption", Max: 500},
			&core.RelationField{
				Name:         "uploaded_by",
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		read := `@request.auth.id != ""`
		write := `@request.auth.role = "director" || event.department = @request.auth.department`
		collection.ListRule = types.Pointer(read)
		collection.ViewRule = types.Pointer(read)
		collection.CreateRule = types.Pointer(write)
		collection.UpdateRule = types.Pointer(write)
		collection.DeleteRule = types.Pointer(write)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("event_photos")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
