package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"synergyai.app/internal/core/caching"
	"synergyai.app/pkg/errors"
)

// getProjects handles GET /api/projects requests
func (s *HTTPServerAdapter) getProjects(c *gin.Context) {
	projects, err := s.catalog.Projects.Call(c.Request.Context(), s.userArgs(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// getChartData handles GET /api/dashboard/chart_data requests
func (s *HTTPServerAdapter) getChartData(c *gin.Context) {
	data, err := s.catalog.ChartData.Call(c.Request.Context(), s.userArgs(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// getNarrative handles GET /api/dashboard/narrative requests
func (s *HTTPServerAdapter) getNarrative(c *gin.Context) {
	narrative, err := s.catalog.Narrative.Call(c.Request.Context(), s.userArgs(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, narrative)
}

// searchCompanies handles GET /api/companies/search requests
func (s *HTTPServerAdapter) searchCompanies(c *gin.Context) {
	args := caching.Args{}.
		With("query", c.Query("query")).
		With("sector", c.Query("sector")).
		With("hq_state", c.Query("hq_state"))

	companies, err := s.catalog.CompanySearch.Call(c.Request.Context(), args)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// getProjectEntity handles GET /api/projects/:project_id/:entity requests
func (s *HTTPServerAdapter) getProjectEntity(c *gin.Context) {
	args, ok := s.projectArgs(c)
	if !ok {
		return
	}

	entry, found := s.catalog.ProjectEntity(c.Param("entity"))
	if !found {
		s.handleError(c, errors.NewNotFoundError("unknown project entity"))
		return
	}

	value, err := entry.Fetch(c.Request.Context(), args)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, value)
}

func (s *HTTPServerAdapter) userArgs(c *gin.Context) caching.Args {
	return caching.Args{UserID: currentUser(c)}
}
