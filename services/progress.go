package services

// FloorProgress is the computed completion of one floor.
type FloorProgress struct {
	FloorID        string  `json:"floorId"`
	Name           string  `json:"name"`
	Progress       float64 `json:"progress"`
	TaskCount      int     `json:"taskCount"`
	CompletedTasks int     `json:"completedTasks"`
	HasTasks       bool    `json:"hasTasks"`
}

// ProgressSnapshot is the output of ComputeProgress. Values keep full
// precision; round with DisplayPercent when presenting them.
type ProgressSnapshot struct {
	ProjectID      string          `json:"projectId"`
	Progress       float64         `json:"progress"`
	HasData        bool            `json:"hasData"`
	Floors         []FloorProgress `json:"floors"`
	TaskCount      int             `json:"taskCount"`
	CompletedTasks int             `json:"completedTasks"`
}

// CalcFloorProgress is the unweighted mean of the floor's task progress,
// each clamped to [0, 100]. A floor without tasks is at 0.
func CalcFloorProgress(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var sum float64
	for _, t := range tasks {
		sum += ClampPercent(t.Progress.UnwrapOrZero())
	}
	return sum / float64(len(tasks))
}

// ComputeProgress rolls task progress up to floors and the project.
// Only a nil project is an error.
func ComputeProgress(project *RawProject) (ProgressSnapshot, error) {
	if project == nil {
		return ProgressSnapshot{}, &MissingDataError{Entity: "project"}
	}

	snap := ProgressSnapshot{
		ProjectID: project.ID,
		HasData:   len(project.Floors) > 0,
		Floors:    make([]FloorProgress, 0, len(project.Floors)),
	}

	var sum float64
	for _, f := range project.Floors {
		fp := FloorProgress{
			FloorID:   f.ID,
			Name:      f.Name,
			Progress:  CalcFloorProgress(f.Tasks),
			TaskCount: len(f.Tasks),
			HasTasks:  len(f.Tasks) > 0,
		}
		for _, t := range f.Tasks {
			if ClampPercent(t.Progress.UnwrapOrZero()) == 100 {
				fp.CompletedTasks++
			}
		}
		sum += fp.Progress
		snap.TaskCount += fp.TaskCount
		snap.CompletedTasks += fp.CompletedTasks
		snap.Floors = append(snap.Floors, fp)
	}

	if len(project.Floors) > 0 {
		snap.Progress = sum / float64(len(project.Floors))
	}
	return snap, nil
}
