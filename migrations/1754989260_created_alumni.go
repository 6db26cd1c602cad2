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

		collection := core.NewBaseCollection("alumni")

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true, Max: 200},
			&core.EmailField{Name: "email"},
			&core.TextField{Name: "phone", Max: 30},
			&core.NumberField{Name: "graduation_year", OnlyInt: true},
			&core.TextField{Name: "degree", Max: 100},
			&core.TextField{Name: "company", Max: 200},
			&core.TextField{Name: "designation", Max: 200},
			&core.SelectField{
				Name:      "placement_status",
				Values:    []string{"placed", "higher_studies", "entrepreneur", "seeking", "unknown"},
				MaxSelect: 1,
			},
			&core.RelationField{
				Name:         "department",
				CollectionId: departments.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		scoped := `@request.auth.role = "director" || department = @request.auth.department`
		collection.ListRule = types.Pointer(scoped)
		collection.ViewRule = types.Pointer(scoped)
		collection.CreateRule = types.Pointer(scoped)
		collection.UpdateRule = types.Pointer(scoped)
		collection.DeleteRule = types.Pointer(scoped)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("alumni")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
