package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type taskDef struct {
	name     string
	progress float64
}

type floorDef struct {
	name   string
	images []services.Image
	tasks  []taskDef
}

type materialDef struct {
	description string
	quantity    float64
	unit        string
	unitCost    float64
}

type categoryDef struct {
	name      string
	materials []materialDef
}

// SeedProjectName is the name of the sample project inserted by Seed.
const SeedProjectName = "Santos Residence"

var seedFloors = []floorDef{
	{
		name:   "Ground Floor",
		images: []services.Image{{Path: "uploads/ground-slab.jpg", Remark: "Slab poured"}},
		tasks: []taskDef{
			{"Excavation", 100},
			{"Footings", 100},
			{"Slab on grade", 80},
			{"CHB walls", 40},
		},
	},
	{
		name: "Second Floor",
		tasks: []taskDef{
			{"Suspended slab", 20},
			{"Columns", 10},
		},
	},
	{name: "Roof Deck"},
}

var seedCategories = []categoryDef{
	{
		name: "Foundation",
		materials: []materialDef{
			{"Portland cement", 120, "bag", 265},
			{"Washed sand", 8, "cu.m", 1450},
			{"Gravel 3/4", 10, "cu.m", 1600},
			{"Rebar 12mm", 180, "pc", 245.5},
		},
	},
	{
		name: "Masonry",
		materials: []materialDef{
			{"CHB 4in", 1800, "pc", 14.75},
			{"Portland cement", 60, "bag", 265},
		},
	},
	{
		name: "Roofing",
		materials: []materialDef{
			{"Pre-painted GI sheet", 42, "pc", 685},
			{"C-purlins 2x4", 24, "pc", 520},
			{"Tekscrews", 6, "box", 350},
		},
	},
	{name: "Finishing"},
}

// Seed populates the database with a sample project (floors, tasks and a
// BOM) when the projects collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		app.Logger().Debug("seed: projects exist, skipping seed data", "count", len(existing))
		return nil
	}

	app.Logger().Info("seed: projects collection is empty, inserting seed data")

	project := core.NewRecord(projectsCol)
	project.Set("name", SeedProjectName)
	project.Set("status", string(services.StatusInProgress))
	project.Set("start_date", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	if err := seedFloorRecords(app, project.Id); err != nil {
		return err
	}
	if err := seedBOMRecords(app, project.Id); err != nil {
		return err
	}

	app.Logger().Info("seed: seed data inserted",
		"project", SeedProjectName,
		"floors", len(seedFloors),
		"categories", len(seedCategories),
	)
	return nil
}

func seedFloorRecords(app *pocketbase.PocketBase, projectID string) error {
	floorsCol, err := app.FindCollectionByNameOrId("floors")
	if err != nil {
		return fmt.Errorf("seed: could not find floors collection: %w", err)
	}
	tasksCol, err := app.FindCollectionByNameOrId("tasks")
	if err != nil {
		return fmt.Errorf("seed: could not find tasks collection: %w", err)
	}

	for i, fd := range seedFloors {
		tasks := make([]services.Task, len(fd.tasks))
		for j, td := range fd.tasks {
			tasks[j] = services.Task{Progress: services.Some(td.progress)}
		}

		floor := core.NewRecord(floorsCol)
		floor.Set("project", projectID)
		floor.Set("sort_order", i+1)
		floor.Set("name", fd.name)
		floor.Set("progress", services.CalcFloorProgress(tasks))
		floor.Set("images", fd.images)
		if err := app.Save(floor); err != nil {
			return fmt.Errorf("seed: save floor %q: %w", fd.name, err)
		}

		for j, td := range fd.tasks {
			task := core.NewRecord(tasksCol)
			task.Set("floor", floor.Id)
			task.Set("sort_order", j+1)
			task.Set("name", td.name)
			task.Set("progress", td.progress)
			if err := app.Save(task); err != nil {
				return fmt.Errorf("seed: save task %q: %w", td.name, err)
			}
		}
	}
	return nil
}

func seedBOMRecords(app *pocketbase.PocketBase, projectID string) error {
	bomsCol, err := app.FindCollectionByNameOrId("boms")
	if err != nil {
		return fmt.Errorf("seed: could not find boms collection: %w", err)
	}
	categoriesCol, err := app.FindCollectionByNameOrId("bom_categories")
	if err != nil {
		return fmt.Errorf("seed: could not find bom_categories collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId("bom_materials")
	if err != nil {
		return fmt.Errorf("seed: could not find bom_materials collection: %w", err)
	}

	bom := core.NewRecord(bomsCol)
	bom.Set("project", projectID)
	bom.Set("total_area", 180)
	bom.Set("num_floors", 2)
	bom.Set("room_count", 5)
	bom.Set("foundation_depth", 1.5)
	bom.Set("avg_floor_height", 3)
	bom.Set("labor_cost", 250000)
	bom.Set("tax", 0)
	if err := app.Save(bom); err != nil {
		return fmt.Errorf("seed: save bom: %w", err)
	}

	for i, cd := range seedCategories {
		category := core.NewRecord(categoriesCol)
		category.Set("bom", bom.Id)
		category.Set("sort_order", i+1)
		category.Set("name", cd.name)
		if err := app.Save(category); err != nil {
			return fmt.Errorf("seed: save category %q: %w", cd.name, err)
		}

		for j, md := range cd.materials {
			material := core.NewRecord(materialsCol)
			material.Set("category", category.Id)
			material.Set("sort_order", j+1)
			material.Set("description", md.description)
			material.Set("quantity", md.quantity)
			material.Set("unit", md.unit)
			material.Set("unit_cost", md.unitCost)
			material.Set("line_total", services.CalcMaterialLineTotal(services.Some(md.quantity), services.Some(md.unitCost)))
			if err := app.Save(material); err != nil {
				return fmt.Errorf("seed: save material %q: %w", md.description, err)
			}
		}
	}
	return nil
}
