package collections_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildtrack/collections"
	"buildtrack/services"
	"buildtrack/testhelpers"
)

func TestLoadProject_Tree(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	project, err := collections.LoadProject(app, record.Id)
	require.NoError(t, err)

	assert.Equal(t, "Foundation House", project.Name)
	assert.Equal(t, services.StatusPlanning, project.Status)
	require.Len(t, project.Floors, 2)
	assert.Equal(t, "Ground Floor", project.Floors[0].Name)
	assert.Len(t, project.Floors[0].Tasks, 2)
	assert.Empty(t, project.Floors[1].Tasks)

	require.NotNil(t, project.BOM)
	require.Len(t, project.BOM.Categories, 1)
	assert.Equal(t, "Foundation", project.BOM.Categories[0].Name)
	assert.Equal(t, 20000.0, project.BOM.LaborCost.UnwrapOrZero())
	assert.Nil(t, project.BOM.MarkedUpCosts)
}

func TestLoadProject_FoundationExample(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	project, err := collections.LoadProject(app, record.Id)
	require.NoError(t, err)

	priced, err := services.ComputeBOM(project.BOM, services.PricingPolicy{})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, priced.Categories[0].CategoryTotal)
	assert.Equal(t, 33000.0, priced.TotalProjectCost)

	snap, err := services.ComputeProgress(project)
	require.NoError(t, err)
	assert.Equal(t, 37.5, snap.Progress)
}

func TestLoadProject_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := collections.LoadProject(app, "doesnotexist123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrMissingData))
}

func TestLoadProject_WithoutBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestProject(t, app, "Bare")

	project, err := collections.LoadProject(app, record.Id)
	require.NoError(t, err)
	assert.Nil(t, project.BOM)
	assert.Empty(t, project.Floors)
}

func TestLoadBOM_Missing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestProject(t, app, "Bare")

	_, err := collections.LoadBOM(app, record.Id)
	var missing *services.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "bom", missing.Entity)
	assert.Equal(t, record.Id, missing.ID)
}

func TestLoadProjects_SortedByName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Zamora Duplex")
	testhelpers.CreateTestProject(t, app, "Aquino Bungalow")

	projects, err := collections.LoadProjects(app)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Aquino Bungalow", projects[0].Name)
	assert.Equal(t, "Zamora Duplex", projects[1].Name)
}

func TestLoadProject_Images(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Photos")
	floor := testhelpers.CreateTestFloor(t, app, project.Id, "Ground Floor", 1)
	floor.Set("images", []services.Image{{Path: "uploads/a.jpg", Remark: "north wall"}})
	require.NoError(t, app.Save(floor))

	loaded, err := collections.LoadProject(app, project.Id)
	require.NoError(t, err)
	require.Len(t, loaded.Floors[0].Images, 1)
	assert.Equal(t, "north wall", loaded.Floors[0].Images[0].Remark)
}
