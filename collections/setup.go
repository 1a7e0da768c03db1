package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// Cached markup modes stored on a BOM.
const (
	MarkupModeRate  = "rate"
	MarkupModeFixed = "fixed"
)

// Setup programmatically creates/ensures the projects, floors, tasks, boms,
// bom_categories and bom_materials collections exist.
//
// Number fields are optional throughout: a required NumberField rejects 0,
// which is a legitimate quantity, cost or progress.
func Setup(app *pocketbase.PocketBase) error {
	statuses := make([]string, len(services.ProjectStatuses))
	for i, s := range services.ProjectStatuses {
		statuses[i] = string(s)
	}

	projects, err := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.DateField{Name: "start_date"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    statuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	if err != nil {
		return err
	}

	floors, err := ensureCollection(app, "floors", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "progress"})
		c.Fields.Add(&core.JSONField{Name: "images"})
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, "tasks", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "floor",
			Required:      true,
			CollectionId:  floors.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "progress"})
		c.Fields.Add(&core.JSONField{Name: "images"})
	})
	if err != nil {
		return err
	}

	boms, err := ensureCollection(app, "boms", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		for _, name := range []string{
			"total_area", "num_floors", "room_count", "foundation_depth", "avg_floor_height",
			"labor_cost", "tax", "material_total_cost", "computed_tax", "total_project_cost",
			"markup_rate", "markup_fixed", "marked_up_total", "marked_up_base",
		} {
			c.Fields.Add(&core.NumberField{Name: name})
		}
		// Empty when no markup has been priced.
		c.Fields.Add(&core.SelectField{
			Name:      "markup_mode",
			Values:    []string{MarkupModeRate, MarkupModeFixed},
			MaxSelect: 1,
		})
		c.AddIndex("idx_boms_project", true, "project", "")
	})
	if err != nil {
		return err
	}

	categories, err := ensureCollection(app, "bom_categories", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "bom",
			Required:      true,
			CollectionId:  boms.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, "bom_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  categories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.TextField{Name: "unit"})
		c.Fields.Add(&core.NumberField{Name: "unit_cost"})
		c.Fields.Add(&core.NumberField{Name: "line_total"})
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		app.Logger().Debug("setup: collection already exists, skipping creation", "collection", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("setup: create collection %q: %w", name, err)
	}

	app.Logger().Info("setup: created collection", "collection", name, "id", collection.Id)
	return collection, nil
}
