package output

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// GanttChart draws the purchase orders a shortfall calls for on a day axis. Day 0 is
// today and production starts at the end of the production cycle; each bar runs from
// the order deadline for the component's lead time.
type GanttChart struct {
	Width        int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	FirstDay     int
	LastDay      int
	CycleDays    int
}

// GanttBar is one short component on the chart
type GanttBar struct {
	Name      string
	Shortfall entities.Quantity
	StartDay  int
	EndDay    int
	Urgency   entities.Urgency
}

// NewGanttChart sizes a chart for the short rows of report
func NewGanttChart(report *dto.ShortfallReport) *GanttChart {
	gc := &GanttChart{
		Width:        1000,
		MarginLeft:   200,
		MarginTop:    60,
		MarginRight:  40,
		MarginBottom: 50,
		RowHeight:    26,
		FirstDay:     0,
		LastDay:      report.ProductionCycleDays,
		CycleDays:    report.ProductionCycleDays,
	}

	for _, bar := range gc.createBars(report) {
		if bar.StartDay < gc.FirstDay {
			gc.FirstDay = bar.StartDay
		}
		if bar.EndDay > gc.LastDay {
			gc.LastDay = bar.EndDay
		}
	}
	if gc.LastDay == gc.FirstDay {
		gc.LastDay = gc.FirstDay + 1
	}
	return gc
}

// GenerateSVG renders the chart
func (gc *GanttChart) GenerateSVG(report *dto.ShortfallReport) string {
	bars := gc.createBars(report)
	if len(bars) == 0 {
		return gc.generateEmptyChart()
	}

	height := gc.MarginTop + len(bars)*gc.RowHeight + gc.MarginBottom
	var svg strings.Builder

	fmt.Fprintf(&svg, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, height)
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.part-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.marker { stroke: #333; stroke-width: 1; stroke-dasharray: 4 3; }`)
	svg.WriteString(`.order-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.order-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style></defs>`)

	fmt.Fprintf(&svg, `<rect width="%d" height="%d" fill="white"/>`, gc.Width, height)
	fmt.Fprintf(&svg, `<text x="%d" y="30" class="title" text-anchor="middle">Order Timeline (production in %d days)</text>`,
		gc.Width/2, gc.CycleDays)

	gc.drawTimeAxis(&svg, height, len(bars))
	for i, bar := range bars {
		gc.drawBar(&svg, bar, gc.MarginTop+i*gc.RowHeight)
	}
	gc.drawMarker(&svg, 0, "today", len(bars))
	gc.drawMarker(&svg, gc.CycleDays, "production", len(bars))

	svg.WriteString(`</svg>`)
	return svg.String()
}

// createBars keeps the short rows, most urgent first
func (gc *GanttChart) createBars(report *dto.ShortfallReport) []GanttBar {
	var bars []GanttBar
	for _, row := range report.Rows {
		if row.Shortfall <= 0 || row.OrderDeadline == nil {
			continue
		}
		bars = append(bars, GanttBar{
			Name:      row.Name,
			Shortfall: row.Shortfall,
			StartDay:  *row.OrderDeadline,
			EndDay:    *row.OrderDeadline + row.LeadTimeDays,
			Urgency:   row.Urgency,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].StartDay < bars[j].StartDay
	})
	return bars
}

func (gc *GanttChart) x(day int) int {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	return gc.MarginLeft + (day-gc.FirstDay)*chartWidth/(gc.LastDay-gc.FirstDay)
}

func (gc *GanttChart) drawTimeAxis(svg *strings.Builder, height, rows int) {
	span := gc.LastDay - gc.FirstDay
	interval := 1
	switch {
	case span > 180:
		interval = 30
	case span > 30:
		interval = 7
	}

	axisY := height - gc.MarginBottom
	gridBottom := gc.MarginTop + rows*gc.RowHeight
	for day := gc.FirstDay; day <= gc.LastDay; day += interval {
		x := gc.x(day)
		fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`, x, gc.MarginTop, x, gridBottom)
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="time-label" text-anchor="middle">%d</text>`, x, axisY+15, day)
	}
	fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		gc.MarginLeft, axisY, gc.Width-gc.MarginRight, axisY)
}

func (gc *GanttChart) drawMarker(svg *strings.Builder, day int, label string, rows int) {
	x := gc.x(day)
	bottom := gc.MarginTop + rows*gc.RowHeight
	fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="marker"/>`, x, gc.MarginTop-10, x, bottom)
	fmt.Fprintf(svg, `<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`, x, gc.MarginTop-14, label)
}

func (gc *GanttChart) drawBar(svg *strings.Builder, bar GanttBar, rowY int) {
	name := html.EscapeString(bar.Name)
	fmt.Fprintf(svg, `<text x="%d" y="%d" class="part-label" text-anchor="end">%s</text>`,
		gc.MarginLeft-15, rowY+gc.RowHeight/2+4, name)

	x := gc.x(bar.StartDay)
	width := gc.x(bar.EndDay) - x
	if width < 2 {
		width = 2
	}

	fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="order-bar">`,
		x, rowY+2, width, gc.RowHeight-4, barColor(bar.Urgency))
	fmt.Fprintf(svg, `<title>%s: order %d by day %d, lead time %d days</title></rect>`,
		name, bar.Shortfall, bar.StartDay, bar.EndDay-bar.StartDay)

	if width > 40 {
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="order-text" text-anchor="middle">Qty: %d</text>`,
			x+width/2, rowY+gc.RowHeight/2+3, bar.Shortfall)
	}
}

func barColor(u entities.Urgency) string {
	switch u {
	case entities.Critical:
		return "#E53935"
	case entities.Urgent:
		return "#FF9800"
	case entities.SafeToOrder:
		return "#2196F3"
	default:
		return "#9E9E9E"
	}
}

func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">Nothing to order</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, gc.Width, 200, gc.Width, 200, gc.Width/2, 100)
}
