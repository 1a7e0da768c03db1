package services

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func tasksWith(progress ...Number) []Task {
	tasks := make([]Task, len(progress))
	for i, p := range progress {
		tasks[i] = Task{Name: "task", Progress: p}
	}
	return tasks
}

func TestCalcFloorProgress(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []Task
		expect float64
	}{
		{"no tasks", nil, 0},
		{"single task", tasksWith(Some(40)), 40},
		{"unweighted mean", tasksWith(Some(50), Some(100)), 75},
		{"missing progress is zero", tasksWith(Some(90), Number{}), 45},
		{"clamps above 100", tasksWith(Some(150), Some(50)), 75},
		{"clamps below 0", tasksWith(Some(-20), Some(60)), 30},
		{"keeps precision", tasksWith(Some(10), Some(20), Some(25)), 55.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcFloorProgress(tt.tasks)
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("CalcFloorProgress() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestComputeProgress_TwoFloorExample(t *testing.T) {
	project := &RawProject{
		ID: "p1",
		Floors: []Floor{
			{ID: "a", Name: "Ground Floor", Tasks: tasksWith(Some(50), Some(100))},
			{ID: "b", Name: "Second Floor"},
		},
	}

	snap, err := ComputeProgress(project)
	if err != nil {
		t.Fatalf("ComputeProgress() error = %v", err)
	}
	if snap.Floors[0].Progress != 75 {
		t.Errorf("floor A progress = %v, want 75", snap.Floors[0].Progress)
	}
	if snap.Floors[1].Progress != 0 || snap.Floors[1].HasTasks {
		t.Errorf("floor B = %+v, want 0 progress without tasks", snap.Floors[1])
	}
	if snap.Progress != 37.5 {
		t.Errorf("project progress = %v, want 37.5", snap.Progress)
	}
	if got := DisplayPercent(snap.Progress); got != 38 {
		t.Errorf("DisplayPercent(%v) = %d, want 38", snap.Progress, got)
	}
	if !snap.HasData {
		t.Error("HasData = false, want true")
	}
	if snap.TaskCount != 2 || snap.CompletedTasks != 1 {
		t.Errorf("TaskCount, CompletedTasks = %d, %d, want 2, 1", snap.TaskCount, snap.CompletedTasks)
	}
}

func TestComputeProgress_NoFloors(t *testing.T) {
	snap, err := ComputeProgress(&RawProject{ID: "empty"})
	if err != nil {
		t.Fatalf("ComputeProgress() error = %v", err)
	}
	if snap.Progress != 0 || snap.HasData {
		t.Errorf("snapshot = %+v, want 0 progress and HasData=false", snap)
	}
	if snap.Floors == nil {
		t.Error("Floors = nil, want empty slice")
	}
}

func TestComputeProgress_NilProject(t *testing.T) {
	_, err := ComputeProgress(nil)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("ComputeProgress(nil) error = %v, want ErrMissingData", err)
	}
}

func TestComputeProgress_IgnoresCachedFloorProgress(t *testing.T) {
	project := &RawProject{Floors: []Floor{
		{Name: "Roof", Progress: Some(99), Tasks: tasksWith(Some(20))},
	}}

	snap, _ := ComputeProgress(project)
	if snap.Floors[0].Progress != 20 {
		t.Errorf("floor progress = %v, want 20 recomputed from tasks", snap.Floors[0].Progress)
	}
	if project.Floors[0].Progress.UnwrapOrZero() != 99 {
		t.Error("ComputeProgress mutated the cached floor progress")
	}
}

func TestComputeProgress_Idempotent(t *testing.T) {
	project := &RawProject{Floors: []Floor{
		{Tasks: tasksWith(Some(33.3), Some(66.6), Some(12))},
		{Tasks: tasksWith(Some(100))},
		{},
	}}
	first, _ := ComputeProgress(project)
	second, _ := ComputeProgress(project)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeProgress not idempotent:\n%+v\n%+v", first, second)
	}
	if first.Progress < 0 || first.Progress > 100 {
		t.Errorf("project progress %v out of range", first.Progress)
	}
}
