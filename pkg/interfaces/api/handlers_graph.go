package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func (s *Server) listNodes(c *gin.Context) {
	Success(c, s.workspace.Nodes(entities.CategoryID(c.Query("category"))))
}

func (s *Server) getNode(c *gin.Context) {
	node, err := s.workspace.Node(entities.NodeID(c.Param("id")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) createNode(c *gin.Context) {
	var input entities.NewSubassembly
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	node, err := s.workspace.AddNode(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, node)
}

func (s *Server) updateNode(c *gin.Context) {
	var patch entities.SubassemblyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	node, err := s.workspace.UpdateNode(entities.NodeID(c.Param("id")), patch)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) deleteNode(c *gin.Context) {
	if err := s.workspace.DeleteNode(entities.NodeID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, s.workspace.Selection())
}

func (s *Server) connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := s.workspace.Connect(entities.NodeID(c.Param("id")), req.ChildID)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"added": added})
}

func (s *Server) disconnect(c *gin.Context) {
	err := s.workspace.Disconnect(entities.NodeID(c.Param("id")), entities.NodeID(c.Param("child")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

func (s *Server) requirements(c *gin.Context) {
	views, err := s.workspace.RequirementsOf(entities.NodeID(c.Param("id")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, views)
}

func (s *Server) setRequirement(c *gin.Context) {
	var req requirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	node, err := s.workspace.SetRequirement(
		entities.NodeID(c.Param("id")),
		entities.ComponentID(c.Param("component")),
		req.Quantity,
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) removeRequirement(c *gin.Context) {
	node, err := s.workspace.RemoveRequirement(entities.NodeID(c.Param("id")), entities.ComponentID(c.Param("component")))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) addComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	node, err := s.workspace.AddComment(entities.NodeID(c.Param("id")), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) removeComment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		BadRequest(c, "invalid comment index: "+c.Param("index"))
		return
	}

	node, err := s.workspace.RemoveComment(entities.NodeID(c.Param("id")), index)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, node)
}

func (s *Server) selectNode(c *gin.Context) {
	if err := s.workspace.SelectNode(entities.NodeID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, s.workspace.Selection())
}

func (s *Server) editNode(c *gin.Context) {
	if err := s.workspace.EditNode(entities.NodeID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, s.workspace.Selection())
}

func (s *Server) roots(c *gin.Context) {
	Success(c, s.workspace.Roots(entities.CategoryID(c.Query("category"))))
}

func (s *Server) listStatuses(c *gin.Context) {
	Success(c, s.workspace.Statuses())
}

func (s *Server) createStatus(c *gin.Context) {
	var status entities.StatusDef
	if err := c.ShouldBindJSON(&status); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := s.workspace.AddStatus(status)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, added)
}

func (s *Server) updateStatus(c *gin.Context) {
	var status entities.StatusDef
	if err := c.ShouldBindJSON(&status); err != nil {
		BadRequest(c, err.Error())
		return
	}
	status.ID = entities.StatusID(c.Param("id"))

	updated, err := s.workspace.UpdateStatus(status)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, updated)
}

func (s *Server) deleteStatus(c *gin.Context) {
	if err := s.workspace.RemoveStatus(entities.StatusID(c.Param("id"))); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
