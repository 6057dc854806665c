package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func (s *Server) listCategories(c *gin.Context) {
	Success(c, s.workspace.Categories())
}

func (s *Server) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	category, err := s.workspace.AddCategoryWithID(req.ID, req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, category)
}

func (s *Server) renameCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	category, err := s.workspace.RenameCategory(entities.CategoryID(c.Param("id")), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, category)
}

// deleteCategory answers with the ids of the subassemblies removed with it
func (s *Server) deleteCategory(c *gin.Context) {
	removed, err := s.workspace.DeleteCategory(entities.CategoryID(c.Param("id")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"removed_subassemblies": removed, "selection": s.workspace.Selection()})
}

func (s *Server) selectCategory(c *gin.Context) {
	if err := s.workspace.SelectCategory(entities.CategoryID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, s.workspace.Selection())
}

func (s *Server) selection(c *gin.Context) {
	Success(c, s.workspace.Selection())
}
