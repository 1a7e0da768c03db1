// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

func saveRecord(t *testing.T, app *pocketbase.PocketBase, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}

	return record
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()
	return saveRecord(t, app, "projects", map[string]any{
		"name":   name,
		"status": "planning",
	})
}

// CreateTestFloor creates a floor record linked to a project.
func CreateTestFloor(t *testing.T, app *pocketbase.PocketBase, projectID, name string, sortOrder int) *core.Record {
	t.Helper()
	return saveRecord(t, app, "floors", map[string]any{
		"project":    projectID,
		"name":       name,
		"sort_order": sortOrder,
	})
}

// CreateTestTask creates a task record linked to a floor.
func CreateTestTask(t *testing.T, app *pocketbase.PocketBase, floorID, name string, progress float64) *core.Record {
	t.Helper()
	return saveRecord(t, app, "tasks", map[string]any{
		"floor":    floorID,
		"name":     name,
		"progress": progress,
	})
}

// CreateTestBOM creates a BOM record linked to a project with the given labor
// cost and tax.
func CreateTestBOM(t *testing.T, app *pocketbase.PocketBase, projectID string, laborCost, tax float64) *core.Record {
	t.Helper()
	return saveRecord(t, app, "boms", map[string]any{
		"project":    projectID,
		"labor_cost": laborCost,
		"tax":        tax,
		"total_area": 120,
		"num_floors": 2,
	})
}

// CreateTestCategory creates a BOM category record.
func CreateTestCategory(t *testing.T, app *pocketbase.PocketBase, bomID, name string, sortOrder int) *core.Record {
	t.Helper()
	return saveRecord(t, app, "bom_categories", map[string]any{
		"bom":        bomID,
		"name":       name,
		"sort_order": sortOrder,
	})
}

// CreateTestMaterial creates a material record in a BOM category.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, categoryID, description string, quantity, unitCost float64) *core.Record {
	t.Helper()
	return saveRecord(t, app, "bom_materials", map[string]any{
		"category":    categoryID,
		"description": description,
		"quantity":    quantity,
		"unit":        "pc",
		"unit_cost":   unitCost,
	})
}

// CreateFoundationProject builds a project with one BOM whose Foundation
// category holds 100 bags of cement at 100.00, labor 20,000 and tax 3,000
// (total 33,000), plus two floors: tasks at 50 and 100 on the first, none on
// the second (progress 37.5).
func CreateFoundationProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	project := CreateTestProject(t, app, name)
	ground := CreateTestFloor(t, app, project.Id, "Ground Floor", 1)
	CreateTestTask(t, app, ground.Id, "Footings", 50)
	CreateTestTask(t, app, ground.Id, "Slab", 100)
	CreateTestFloor(t, app, project.Id, "Second Floor", 2)

	bom := CreateTestBOM(t, app, project.Id, 20000, 3000)
	category := CreateTestCategory(t, app, bom.Id, "Foundation", 1)
	CreateTestMaterial(t, app, category.Id, "Cement", 100, 100)

	return project
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
