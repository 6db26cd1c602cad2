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

		collection := core.NewBaseCollection("event_report_data")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "event",
				CollectionId: events.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.RelationField{
				Name:         "generated_by",
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.TextField{Name: "introduction", Max: 5000},
			&core.TextField{Name: "event_summary", Required: true, Max: 10000},
			&core.TextField{Name: "key_highlights", Required: true, Max: 5000},
			&core.TextField{Name: "outcomes", Required: true, Max: 5000},
			&core.SelectField{
				Name:      "speaker_rating",
				Values:    []string{"excellent", "good", "average"},
				MaxSelect: 1,
			},
			&core.TextField{Name: "speaker_feedback", Max: 2000},
			&core.NumberField{Name: "overall_rating", OnlyInt: true},
			&core.BoolField{Name: "was_useful"},
			&core.TextField{Name: "what_went_well", Max: 2000},
			&core.TextField{Name: "what_to_improve", Max: 2000},
			&core.TextField{Name: "future_suggestions", Max: 2000},
			&core.TextField{Name: "conclusion", Max: 5000},
			&core.NumberField{Name: "students_attended", OnlyInt: true},
			&core.NumberField{Name: "external_guests", OnlyInt: true},
			&core.NumberField{Name: "alumni_attended", OnlyInt: true},
			&core.TextField{Name: "coordinator_name", Required: true, Max: 200},
			&core.TextField{Name: "approved_by", Required: true, Max: 200},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// Submissions are append-only: no update or delete rules means only
		// superusers can touch existing rows.
		read := `@request.auth.role = "director" || event.department = @request.auth.department`
		collection.ListRule = types.Pointer(read)
		collection.ViewRule = types.Pointer(read)
		collection.CreateRule = types.Pointer(`@request.auth.role = "director" || @request.auth.role = "hod"`)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("event_report_data")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
