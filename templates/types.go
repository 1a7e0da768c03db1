// Package templates holds the templ components for the project, progress
// and BOM views. Each view has a Content component (HTMX partial) and a
// Page component wrapping it in the layout.
package templates

type ProjectRow struct {
	ID        string
	Name      string
	Status    string
	StartDate string
	Total     string
	HasBOM    bool
	Percent   int
}

type PresetView struct {
	Label string
	Value string
}

// ProjectListData is everything the project list renders.
type ProjectListData struct {
	Projects  []ProjectRow
	MinBudget string
	MaxBudget string
	Presets   []PresetView
}

type TaskView struct {
	Name    string
	Percent int
}

type FloorView struct {
	Name           string
	Percent        int
	TaskCount      int
	CompletedTasks int
	Tasks          []TaskView
}

// ProgressViewData is everything the progress view renders.
type ProgressViewData struct {
	ProjectID   string
	ProjectName string
	Status      string
	Percent     int
	HasData     bool
	Floors      []FloorView
}

// MaterialView is one material row with pre-formatted amounts.
type MaterialView struct {
	Index       string
	Description string
	Qty         string
	Unit        string
	UnitCost    string
	LineTotal   string
}

// CategoryView is a BOM category with its materials.
type CategoryView struct {
	Index     int
	Name      string
	Total     string
	Materials []MaterialView
}

// DetailView is a labelled project measurement.
type DetailView struct {
	Label string
	Value string
}

// BOMViewData is everything the BOM view renders.
type BOMViewData struct {
	ProjectID        string
	ProjectName      string
	Status           string
	Details          []DetailView
	Categories       []CategoryView
	MaterialTotal    string
	LaborCost        string
	Tax              string
	TotalProjectCost string
	HasMarkup        bool
	MarkupLabel      string
	Markup           string
	GrandTotal       string
	MarkupStale      bool
}
