package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildtrack/collections"
	"buildtrack/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"floors",
	"tasks",
	"boms",
	"bom_categories",
	"bom_materials",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if assert.NoError(t, err, "collection %q not found after Setup()", name) {
			assert.Equal(t, name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		require.NoError(t, err)
		ids[name] = col.Id
	}

	require.NoError(t, collections.Setup(app))

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		require.NoError(t, err, "collection %q missing after second Setup()", name)
		assert.Equal(t, ids[name], col.Id, "collection %q was recreated", name)
	}
}

func TestSetup_FieldsPresent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	fields := map[string][]string{
		"projects":       {"name", "start_date", "status", "created", "updated"},
		"floors":         {"project", "sort_order", "name", "progress", "images"},
		"tasks":          {"floor", "sort_order", "name", "progress", "images"},
		"boms":           {"project", "labor_cost", "tax", "material_total_cost", "computed_tax", "total_project_cost", "markup_mode", "marked_up_total", "marked_up_base"},
		"bom_categories": {"bom", "sort_order", "name"},
		"bom_materials":  {"category", "sort_order", "description", "quantity", "unit", "unit_cost", "line_total"},
	}

	for name, want := range fields {
		col, err := app.FindCollectionByNameOrId(name)
		require.NoError(t, err)
		for _, f := range want {
			assert.NotNil(t, col.Fields.GetByName(f), "%s.%s missing", name, f)
		}
	}
}

func TestSetup_ZeroQuantityAccepted(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	project := testhelpers.CreateTestProject(t, app, "Zero")
	bom := testhelpers.CreateTestBOM(t, app, project.Id, 0, 0)
	category := testhelpers.CreateTestCategory(t, app, bom.Id, "Empty", 1)
	material := testhelpers.CreateTestMaterial(t, app, category.Id, "Placeholder", 0, 0)

	assert.Equal(t, 0.0, material.GetFloat("quantity"))
}
