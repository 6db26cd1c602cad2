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

		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{Name: "title", Required: true, Max: 300},
			&core.TextField{Name: "description", Max: 5000},
			&core.TextField{Name: "event_date", Max: 30}, // YYYY-MM-DD
			&core.TextField{Name: "event_time", Max: 10}, // HH:MM
			&core.TextField{Name: "venue", Max: 300},
			&core.SelectField{
				Name:      "event_type",
				Values:    []string{"reunion", "webinar", "workshop", "seminar", "networking", "other"},
				MaxSelect: 1,
			},
			&core.SelectField{
				Name:      "mode",
				Values:    []string{"offline", "online", "hybrid"},
				MaxSelect: 1,
			},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"draft", "published", "completed", "cancelled"},
				MaxSelect: 1,
			},
			&core.NumberField{Name: "expected_participants", OnlyInt: true},
			&core.TextField{Name: "coordinator_name", Max: 200},
			&core.TextField{Name: "speaker_name", Max: 200},
			&core.TextField{Name: "speaker_designation", Max: 200},
			&core.TextField{Name: "speaker_organization", Max: 200},
			&core.TextField{Name: "speaker_bio", Max: 2000},
			&core.RelationField{
				Name:         "department",
				CollectionId: departments.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		read := `@request.auth.id != ""`
		write := `@request.auth.role = "director" || (department = @request.auth.department && @request.auth.role != "")`
		collection.ListRule = types.Pointer(read)
		collection.ViewRule = types.Pointer(read)
		collection.CreateRule = types.Pointer(write)
		collection.UpdateRule = types.Pointer(write)
		collection.DeleteRule = types.Pointer(write)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
