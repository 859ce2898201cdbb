package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"resource-console/models"
)

func (s *Server) listTasks(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.Task{}, st.tasks...))
}

func (s *Server) createTask(c echo.Context) error {
	var t models.Task
	if err := c.Bind(&t); err != nil {
		return invalid(c, err)
	}
	if err := t.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	t.ID = st.nextID("task")
	st.tasks = append(st.tasks, t)
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTask(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var t models.Task
	if err := c.Bind(&t); err != nil {
		return invalid(c, err)
	}
	if err := t.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.tasks, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Task not found")
	}
	t.ID = id
	st.tasks[i] = t
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.tasks, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Task not found")
	}
	st.tasks = removeAt(st.tasks, i)
	return c.NoContent(http.StatusNoContent)
}
