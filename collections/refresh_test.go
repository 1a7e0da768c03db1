package collections_test

import (
	"errors"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildtrack/collections"
	"buildtrack/services"
	"buildtrack/testhelpers"
)

func TestRefreshDerivedCaches(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	stats, err := collections.RefreshDerivedCaches(app, services.PricingPolicy{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Projects)
	assert.Equal(t, 1, stats.Floors, "only the floor with tasks changes from 0")
	assert.Equal(t, 1, stats.Materials)
	assert.Equal(t, 1, stats.BOMs)

	floors, err := app.FindRecordsByFilter("floors", "project = {:p}", "sort_order", 0, 0, map[string]any{"p": project.Id})
	require.NoError(t, err)
	assert.Equal(t, 75.0, floors[0].GetFloat("progress"))
	assert.Equal(t, 0.0, floors[1].GetFloat("progress"))

	materials, _ := app.FindAllRecords("bom_materials")
	assert.Equal(t, 10000.0, materials[0].GetFloat("line_total"))

	bom, err := app.FindFirstRecordByFilter("boms", "project = {:p}", map[string]any{"p": project.Id})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, bom.GetFloat("material_total_cost"))
	assert.Equal(t, 33000.0, bom.GetFloat("total_project_cost"))
}

func TestRefreshDerivedCaches_SecondRunNoChanges(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateFoundationProject(t, app, "Foundation House")

	_, err := collections.RefreshDerivedCaches(app, services.PricingPolicy{})
	require.NoError(t, err)

	stats, err := collections.RefreshDerivedCaches(app, services.PricingPolicy{})
	require.NoError(t, err)
	assert.Equal(t, collections.RefreshStats{Projects: 1}, stats)
}

func TestRefreshDerivedCaches_LeavesMarkupAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	bom, err := collections.LoadBOM(app, project.Id)
	require.NoError(t, err)
	priced, err := services.ComputeBOM(bom, services.PricingPolicy{MarkupRate: services.Some(0.15)})
	require.NoError(t, err)
	require.NoError(t, collections.SaveMarkup(app, project.Id, priced))

	_, err = collections.RefreshDerivedCaches(app, services.PricingPolicy{MarkupRate: services.Some(0.5)})
	require.NoError(t, err)

	record, err := app.FindFirstRecordByFilter("boms", "project = {:p}", map[string]any{"p": project.Id})
	require.NoError(t, err)
	assert.Equal(t, 37950.0, record.GetFloat("marked_up_total"))
}

func TestRefreshDerivedCaches_TaxRateKeepsEnteredTax(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	_, err := collections.RefreshDerivedCaches(app, services.PricingPolicy{TaxRate: services.Some(0.12)})
	require.NoError(t, err)

	record, err := app.FindFirstRecordByFilter("boms", "project = {:p}", map[string]any{"p": project.Id})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, record.GetFloat("tax"), "entered tax is kept")
	assert.Equal(t, 3600.0, record.GetFloat("computed_tax"))
	assert.Equal(t, 33600.0, record.GetFloat("total_project_cost"))

	// Without a tax rate the entered tax applies again.
	bom, err := collections.LoadBOM(app, project.Id)
	require.NoError(t, err)
	priced, err := services.ComputeBOM(bom, services.PricingPolicy{})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, priced.Tax)
	assert.Equal(t, 33000.0, priced.TotalProjectCost)

	_, err = collections.RefreshDerivedCaches(app, services.PricingPolicy{})
	require.NoError(t, err)
	record, err = app.FindRecordById("boms", record.Id)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, record.GetFloat("computed_tax"))
	assert.Equal(t, 33000.0, record.GetFloat("total_project_cost"))
}

func TestRefreshDerivedCaches_FailedProjectRolledBackAndUncounted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	app.OnRecordUpdate("boms").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("project") == project.Id {
			return errors.New("write rejected")
		}
		return e.Next()
	})

	stats, err := collections.RefreshDerivedCaches(app, services.PricingPolicy{})
	require.Error(t, err)
	assert.Equal(t, collections.RefreshStats{}, stats)

	floors, err := app.FindRecordsByFilter("floors", "project = {:p}", "sort_order", 0, 0, map[string]any{"p": project.Id})
	require.NoError(t, err)
	assert.Equal(t, 0.0, floors[0].GetFloat("progress"), "floor update rolled back with the project")
}
