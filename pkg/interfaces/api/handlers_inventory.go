package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func (s *Server) listComponents(c *gin.Context) {
	Success(c, s.workspace.Components())
}

func (s *Server) getComponent(c *gin.Context) {
	component, err := s.workspace.Component(entities.ComponentID(c.Param("id")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, component)
}

func (s *Server) createComponent(c *gin.Context) {
	var req createComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	component, err := s.workspace.AddComponent(req.Name, req.Stock, req.LeadTimeDays, req.UnitCost)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, component)
}

func (s *Server) updateComponent(c *gin.Context) {
	var patch entities.ComponentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	component, err := s.workspace.UpdateComponent(entities.ComponentID(c.Param("id")), patch)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, component)
}

func (s *Server) deleteComponent(c *gin.Context) {
	if err := s.workspace.DeleteComponent(entities.ComponentID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// setStock updates a component found by exact, case-insensitive name
func (s *Server) setStock(c *gin.Context) {
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	matched, err := s.workspace.SetStock(req.Name, req.Stock)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !matched {
		NotFound(c, "component not found: "+req.Name)
		return
	}
	Success(c, gin.H{"name": req.Name, "stock": req.Stock})
}
