package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodtrack/pkg/infrastructure/spreadsheet"
)

func (s *Server) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := s.workspace.Resolve(req.Targets)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

func (s *Server) plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	report, err := s.workspace.Plan(req.Targets, req.ProductionCycleDays)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, report)
}

// exportPlan answers with the shortfall report as an xlsx download
func (s *Server) exportPlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	report, err := s.workspace.Plan(req.Targets, req.ProductionCycleDays)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !report.Resolve.Found {
		NotFound(c, "targets not found")
		return
	}

	f, err := spreadsheet.WriteShortfall(report.Shortfall)
	if err != nil {
		InternalError(c, "write excel: "+err.Error())
		return
	}
	defer f.Close()

	writeWorkbook(c, "shortfall.xlsx", f)
}

func (s *Server) validate(c *gin.Context) {
	Success(c, s.workspace.ValidateGraph())
}

func (s *Server) issues(c *gin.Context) {
	Success(c, s.workspace.Issues())
}

// changes returns the change log after ?from=N (default 0)
func (s *Server) changes(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			BadRequest(c, "invalid from position: "+raw)
			return
		}
		from = v
	}

	entries, err := s.workspace.Changes(from)
	if err != nil {
		HandleError(c, err)
		return
	}

	messages := make([]ChangeMessage, 0, len(entries))
	for _, event := range entries {
		messages = append(messages, ChangeMessage{
			Type:     event.Type(),
			Stream:   event.StreamID(),
			Position: event.Position(),
			Time:     event.Timestamp(),
			Data:     event.Data(),
		})
	}
	Success(c, messages)
}

func (s *Server) searchNodes(c *gin.Context) {
	Success(c, s.workspace.FindNode(c.Query("q")))
}

func (s *Server) searchComponents(c *gin.Context) {
	Success(c, s.workspace.FindComponentFuzzy(c.Query("q")))
}

func (s *Server) resolveName(c *gin.Context) {
	Success(c, s.workspace.ResolveName(c.Param("name")))
}

// composition answers "what is X made of"; a miss is a soft result with suggestions
func (s *Server) composition(c *gin.Context) {
	var req compositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, s.workspace.DescribeComposition(req.Query))
}

// produce answers "produce N units of X"
func (s *Server) produce(c *gin.Context) {
	var req produceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	answer, err := s.workspace.ProduceUnits(req.Query, req.Quantity)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, answer)
}

func (s *Server) wsStats(c *gin.Context) {
	Success(c, gin.H{"connected_clients": s.hub.ClientCount()})
}
