package collections

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// LoadProject reads a project with its floors, tasks and BOM into an engine
// snapshot. Everything is fetched before the snapshot is returned so the
// engine never sees a partially loaded project. A missing project yields a
// *services.MissingDataError. A project without a BOM has a nil BOM.
func LoadProject(app core.App, projectID string) (*services.RawProject, error) {
	record, err := app.FindRecordById("projects", projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &services.MissingDataError{Entity: "project", ID: projectID}
		}
		return nil, fmt.Errorf("load: find project %s: %w", projectID, err)
	}
	return loadProjectTree(app, record)
}

// LoadProjects reads every project, ordered by name.
func LoadProjects(app core.App) ([]*services.RawProject, error) {
	records, err := app.FindAllRecords("projects")
	if err != nil {
		return nil, fmt.Errorf("load: query projects: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GetString("name") < records[j].GetString("name")
	})

	projects := make([]*services.RawProject, 0, len(records))
	for _, r := range records {
		p, err := loadProjectTree(app, r)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// LoadBOM reads the BOM of a project. A project without one yields a
// *services.MissingDataError.
func LoadBOM(app core.App, projectID string) (*services.RawBOM, error) {
	record, err := findBOMRecord(app, projectID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &services.MissingDataError{Entity: "bom", ID: projectID}
	}
	return bomFromRecord(app, record)
}

func loadProjectTree(app core.App, record *core.Record) (*services.RawProject, error) {
	p := &services.RawProject{
		ID:        record.Id,
		Name:      record.GetString("name"),
		StartDate: record.GetDateTime("start_date").Time(),
		Status:    services.ParseStatus(record.GetString("status")),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}

	floors, err := loadFloors(app, record.Id)
	if err != nil {
		return nil, err
	}
	p.Floors = floors

	bomRecord, err := findBOMRecord(app, record.Id)
	if err != nil {
		return nil, err
	}
	if bomRecord != nil {
		bom, err := bomFromRecord(app, bomRecord)
		if err != nil {
			return nil, err
		}
		p.BOM = bom
	}
	return p, nil
}

func loadFloors(app core.App, projectID string) ([]services.Floor, error) {
	records, err := app.FindRecordsByFilter(
		"floors",
		"project = {:projectId}",
		"sort_order", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load: query floors for project %s: %w", projectID, err)
	}

	floors := make([]services.Floor, 0, len(records))
	for _, r := range records {
		tasks, err := loadTasks(app, r.Id)
		if err != nil {
			return nil, err
		}
		floors = append(floors, services.Floor{
			ID:       r.Id,
			Name:     r.GetString("name"),
			Progress: services.Some(r.GetFloat("progress")),
			Tasks:    tasks,
			Images:   readImages(r),
		})
	}
	return floors, nil
}

func loadTasks(app core.App, floorID string) ([]services.Task, error) {
	records, err := app.FindRecordsByFilter(
		"tasks",
		"floor = {:floorId}",
		"sort_order", 0, 0,
		map[string]any{"floorId": floorID},
	)
	if err != nil {
		return nil, fmt.Errorf("load: query tasks for floor %s: %w", floorID, err)
	}

	tasks := make([]services.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, services.Task{
			ID:       r.Id,
			Name:     r.GetString("name"),
			Progress: services.Some(r.GetFloat("progress")),
			Images:   readImages(r),
		})
	}
	return tasks, nil
}

// readImages decodes the images JSON field. Malformed data reads as no images.
func readImages(r *core.Record) []services.Image {
	var images []services.Image
	if err := r.UnmarshalJSONField("images", &images); err != nil {
		return nil
	}
	return images
}

// findBOMRecord returns the BOM record of a project, or nil when it has none.
func findBOMRecord(app core.App, projectID string) (*core.Record, error) {
	record, err := app.FindFirstRecordByFilter(
		"boms",
		"project = {:projectId}",
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load: find bom for project %s: %w", projectID, err)
	}
	return record, nil
}

func bomFromRecord(app core.App, record *core.Record) (*services.RawBOM, error) {
	num := func(field string) services.Number {
		return services.Some(record.GetFloat(field))
	}

	bom := &services.RawBOM{
		ProjectDetails: services.ProjectDetails{
			TotalArea:       num("total_area"),
			NumFloors:       num("num_floors"),
			RoomCount:       num("room_count"),
			FoundationDepth: num("foundation_depth"),
			AvgFloorHeight:  num("avg_floor_height"),
		},
		LaborCost:         num("labor_cost"),
		Tax:               num("tax"),
		MaterialTotalCost: num("material_total_cost"),
		TotalProjectCost:  num("total_project_cost"),
		MarkedUpCosts:     cachedMarkup(record),
	}

	categories, err := loadCategories(app, record.Id)
	if err != nil {
		return nil, err
	}
	bom.Categories = categories
	return bom, nil
}

// cachedMarkup reads the marked-up totals last stored on a BOM record.
func cachedMarkup(record *core.Record) *services.MarkedUpCosts {
	mode := record.GetString("markup_mode")
	if mode == "" {
		return nil
	}

	total := record.GetFloat("marked_up_total")
	base := record.GetFloat("marked_up_base")
	mc := &services.MarkedUpCosts{
		TotalProjectCost: total,
		Markup:           services.RoundMoney(total - base),
		BaseTotal:        base,
	}
	switch mode {
	case MarkupModeRate:
		rate := record.GetFloat("markup_rate")
		mc.Rate = &rate
	case MarkupModeFixed:
		fixed := record.GetFloat("markup_fixed")
		mc.Fixed = &fixed
	}
	return mc
}

func loadCategories(app core.App, bomID string) ([]services.Category, error) {
	records, err := app.FindRecordsByFilter(
		"bom_categories",
		"bom = {:bomId}",
		"sort_order", 0, 0,
		map[string]any{"bomId": bomID},
	)
	if err != nil {
		return nil, fmt.Errorf("load: query categories for bom %s: %w", bomID, err)
	}

	categories := make([]services.Category, 0, len(records))
	for _, r := range records {
		materials, err := loadMaterials(app, r.Id)
		if err != nil {
			return nil, err
		}
		categories = append(categories, services.Category{
			Name:      r.GetString("name"),
			Materials: materials,
		})
	}
	return categories, nil
}

func loadMaterials(app core.App, categoryID string) ([]services.Material, error) {
	records, err := app.FindRecordsByFilter(
		"bom_materials",
		"category = {:categoryId}",
		"sort_order", 0, 0,
		map[string]any{"categoryId": categoryID},
	)
	if err != nil {
		return nil, fmt.Errorf("load: query materials for category %s: %w", categoryID, err)
	}

	materials := make([]services.Material, 0, len(records))
	for _, r := range records {
		materials = append(materials, services.Material{
			Description: r.GetString("description"),
			Quantity:    services.Some(r.GetFloat("quantity")),
			Unit:        r.GetString("unit"),
			UnitCost:    services.Some(r.GetFloat("unit_cost")),
			LineTotal:   services.Some(r.GetFloat("line_total")),
		})
	}
	return materials, nil
}
