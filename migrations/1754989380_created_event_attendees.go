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
		alumni, err := app.FindCollectionByNameOrId("alumni")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("event_attendees")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "event",
				CollectionId:  events.Id,
				MaxSelect:     1,
				Required:      true,
				CascadeDelete: true,
			},
			&core.RelationField{
				Name:         "alumni",
				CollectionId: alumni.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"registered", "attended", "no_show"},
				MaxSelect: 1,
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		scoped := `@request.auth.role = "director" || event.department = @request.auth.department`
		collection.ListRule = types.Pointer(scoped)
		collection.ViewRule = types.Pointer(scoped)
		collection.CreateRule = types.Pointer(scoped)
		collection.UpdateRule = types.Pointer(scoped)
		collection.DeleteRule = types.Pointer(scoped)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("event_attendees")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
