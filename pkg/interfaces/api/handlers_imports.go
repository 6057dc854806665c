package api

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/spreadsheet"
)

// applyQuantities takes a JSON list of {name, quantity}
func (s *Server) applyQuantities(c *gin.Context) {
	var updates []dto.QuantityUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, s.workspace.ApplyQuantities(updates))
}

// importBOM reads an uploaded xlsx or csv BOM sheet into ?category=
func (s *Server) importBOM(c *gin.Context) {
	category := entities.CategoryID(c.Query("category"))
	if category == "" {
		category = s.workspace.Selection().ActiveCategory
	}

	var rows []dto.ImportRow
	ok := s.withUpload(c, func(name string, r io.Reader) error {
		var err error
		if isCSV(name) {
			rows, err = s.csv.ReadBOM(r)
		} else {
			rows, err = spreadsheet.ReadBOM(r)
		}
		return err
	})
	if !ok {
		return
	}

	result, err := s.workspace.ImportBOM(category, rows)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// importQuantities reads an uploaded xlsx or csv quantity sheet
func (s *Server) importQuantities(c *gin.Context) {
	var updates []dto.QuantityUpdate
	ok := s.withUpload(c, func(name string, r io.Reader) error {
		var err error
		if isCSV(name) {
			updates, err = s.csv.ReadQuantities(r)
		} else {
			updates, err = spreadsheet.ReadQuantities(r)
		}
		return err
	})
	if !ok {
		return
	}
	Success(c, s.workspace.ApplyQuantities(updates))
}

func (s *Server) template(c *gin.Context) {
	var (
		f   *excelize.File
		err error
	)
	switch c.Param("kind") {
	case "bom":
		f, err = spreadsheet.BOMTemplate()
	case "quantities":
		f, err = spreadsheet.QuantityTemplate()
	default:
		NotFound(c, "unknown template: "+c.Param("kind"))
		return
	}
	if err != nil {
		InternalError(c, "write template: "+err.Error())
		return
	}
	defer f.Close()

	writeWorkbook(c, c.Param("kind")+"_template.xlsx", f)
}

func (s *Server) snapshot(c *gin.Context) {
	Success(c, s.workspace.Snapshot())
}

// loadSnapshot replaces the whole workspace. Nothing changes when it fails.
func (s *Server) loadSnapshot(c *gin.Context) {
	var snapshot entities.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := s.workspace.Load(&snapshot); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"selection": s.workspace.Selection()})
}

func (s *Server) withUpload(c *gin.Context, parse func(name string, r io.Reader) error) bool {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "a file upload named \"file\" is required")
		return false
	}
	defer file.Close()

	if err := parse(header.Filename, file); err != nil {
		s.logger.Info("import rejected", zap.String("file", header.Filename), zap.Error(err))
		BadRequest(c, err.Error())
		return false
	}
	return true
}

func isCSV(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

func writeWorkbook(c *gin.Context, filename string, f *excelize.File) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
