package services

import (
	"context"
	"fmt"
	"strings"

	"resource-console/internal/resource"
	"resource-console/internal/restclient"
	"resource-console/models"
)

var taskMessages = resource.Messages{
	List:    "Failed to fetch tasks. Please try again.",
	Get:     "Failed to fetch task. Please try again.",
	Create:  "Failed to create task. Please try again.",
	Update:  "Failed to update task. Please try again.",
	Delete:  "Failed to delete task. Please try again.",
	Confirm: "Are you sure you want to delete this task?",
}

type TaskService struct {
	*resource.Controller[models.Task]
}

func NewTaskService(client *restclient.Client, opts Options) *TaskService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.Task](client, "/tasks")
	return &TaskService{
		Controller: resource.NewController[models.Task]("tasks", ep, opts.controller(taskMessages)),
	}
}

func (s *TaskService) Load(ctx context.Context) ([]models.Task, error) {
	return s.List(ctx, resource.Filter{})
}

func (s *TaskService) Add(ctx context.Context, title, description string) (models.Task, error) {
	return s.Create(ctx, models.Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	})
}

// Edit replaces title and description and keeps the completion flag.
func (s *TaskService) Edit(ctx context.Context, id int64, title, description string) (models.Task, error) {
	t, ok := s.Find(id)
	if !ok {
		return models.Task{}, fmt.Errorf("edit task %d: %w", id, resource.ErrNotCached)
	}
	t.Title = strings.TrimSpace(title)
	t.Description = strings.TrimSpace(description)
	return s.Update(ctx, id, t)
}

// ToggleComplete sends the cached task back with its flag flipped.
func (s *TaskService) ToggleComplete(ctx context.Context, id int64) (models.Task, error) {
	t, ok := s.Find(id)
	if !ok {
		return models.Task{}, fmt.Errorf("toggle task %d: %w", id, resource.ErrNotCached)
	}
	t.Completed = !t.Completed
	return s.Update(ctx, id, t)
}

func (s *TaskService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Remove(ctx, id)
}

type TaskStats struct {
	Total     int
	Completed int
	Pending   int
}

// Stats counts the cached tasks.
func (s *TaskService) Stats() TaskStats {
	var st TaskStats
	for _, t := range s.Items() {
		st.Total++
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}
