package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
)

func (s *Server) handleListProjects(c echo.Context) error {
	ownerID := c.Get("user_id").(string)

	projects, err := s.store.ListProjects(c.Request().Context(), ownerID)
	if err != nil {
		logger.Error("list projects failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	ownerID := c.Get("user_id").(string)

	var p model.Project
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if strings.TrimSpace(p.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "project name required"})
	}
	if p.Status == "" {
		p.Status = model.ProjectNotStarted
	}
	if !p.Status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project status"})
	}

	created, err := s.store.CreateProject(c.Request().Context(), ownerID, p)
	if err != nil {
		logger.Error("create project failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	logger.Info("project created", logger.F("id", created.ID), logger.F("owner", ownerID))
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	ownerID := c.Get("user_id").(string)
	id := c.Param("id")

	var p model.Project
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	p.ID = id
	if strings.TrimSpace(p.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "project name required"})
	}
	if !p.Status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project status"})
	}
	for i := range p.Tasks {
		if err := p.Tasks[i].Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}

	updated, err := s.store.UpdateProject(c.Request().Context(), ownerID, p)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}
	if err != nil {
		logger.Error("update project failed", logger.F("id", id), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	ownerID := c.Get("user_id").(string)
	id := c.Param("id")

	err := s.store.DeleteProject(c.Request().Context(), ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}
	if err != nil {
		logger.Error("delete project failed", logger.F("id", id), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	logger.Info("project deleted", logger.F("id", id), logger.F("owner", ownerID))
	return c.NoContent(http.StatusNoContent)
}
