package serializer

import (
	"github.com/ajutor-app/ajutor/internal/modules/model"
)

// TaskView is a task decorated with the display fields the clients render.
type TaskView struct {
	model.Task
	StatusLabel   string `json:"status_label"`
	LocationLabel string `json:"location_label"`
	CreatorName   string `json:"creator_name,omitempty"`
	AssigneeName  string `json:"assignee_name,omitempty"`
}

func BuildTask(t *model.Task) TaskView {
	view := TaskView{
		Task:          *t,
		StatusLabel:   t.StatusID.Label(),
		LocationLabel: t.LocationLabel(),
	}
	if t.Creator != nil {
		view.CreatorName = t.Creator.Name
	}
	if t.AssignedUser != nil {
		view.AssigneeName = t.AssignedUser.Name
	}
	// relations already flattened into the name fields
	view.Creator = nil
	view.AssignedUser = nil
	return view
}

func BuildTasks(tasks []model.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		out = append(out, BuildTask(&tasks[i]))
	}
	return out
}
