package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/services"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// Generate writes report to w in the configured format
func Generate(w io.Writer, report *dto.ProductionReport, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(w, report, config)
	case "json":
		return generateJSONOutput(w, report)
	case "csv":
		return generateCSVOutput(w, report)
	case "svg":
		return generateSVGOutput(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

var urgencyColors = map[entities.Urgency]*color.Color{
	entities.InStock:     color.New(color.FgGreen),
	entities.Critical:    color.New(color.FgHiRed, color.Bold),
	entities.Urgent:      color.New(color.FgYellow),
	entities.SafeToOrder: color.New(color.FgCyan),
}

// UrgencyLabel renders an urgency with its terminal colour
func UrgencyLabel(u entities.Urgency) string {
	label := strings.ReplaceAll(u.String(), "_", " ")
	if c, ok := urgencyColors[u]; ok {
		return c.Sprint(label)
	}
	return label
}

func generateTextOutput(w io.Writer, report *dto.ProductionReport, config Config) error {
	resolve := report.Resolve
	if resolve == nil || !resolve.Found {
		missing := []string{}
		available := []string{}
		if resolve != nil {
			missing, available = resolve.Missing, resolve.AvailableRoots
		}
		fmt.Fprintf(w, "%s %s\n", color.HiRedString("Not found:"), strings.Join(missing, ", "))
		if len(available) > 0 {
			fmt.Fprintf(w, "Available: %s\n", strings.Join(available, ", "))
		}
		return nil
	}

	fmt.Fprintf(w, "Production Plan\n")
	fmt.Fprintf(w, "===============\n\n")
	fmt.Fprintf(w, "Subassemblies: %d\n", len(resolve.Plan))
	fmt.Fprintf(w, "Components:    %d\n", len(resolve.ComponentDemand))

	if config.Verbose && len(resolve.Plan) > 0 {
		fmt.Fprintf(w, "\n%-24s %-12s %-8s\n", "Subassembly", "Category", "Target")
		fmt.Fprintf(w, "%-24s %-12s %-8s\n", strings.Repeat("-", 24), strings.Repeat("-", 12), strings.Repeat("-", 8))
		for _, item := range resolve.Plan {
			fmt.Fprintf(w, "%-24s %-12s %-8d\n", item.Name, item.Category, item.TargetQuantity)
		}
	}

	if len(resolve.UnknownComponents) > 0 {
		ids := make([]string, len(resolve.UnknownComponents))
		for i, id := range resolve.UnknownComponents {
			ids[i] = string(id)
		}
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Unknown components:"), strings.Join(ids, ", "))
	}

	shortfall := report.Shortfall
	if shortfall == nil {
		return nil
	}

	fmt.Fprintf(w, "\nShortfall (production cycle %d days)\n", shortfall.ProductionCycleDays)
	fmt.Fprintf(w, "%-24s %-10s %-10s %-10s %-6s %-9s %-14s %-12s\n",
		"Component", "Required", "Stock", "Short", "Lead", "Deadline", "Urgency", "Order cost")
	fmt.Fprintf(w, "%-24s %-10s %-10s %-10s %-6s %-9s %-14s %-12s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 10),
		strings.Repeat("-", 6), strings.Repeat("-", 9), strings.Repeat("-", 14), strings.Repeat("-", 12))

	for _, row := range shortfall.Rows {
		fmt.Fprintf(w, "%-24s %-10d %-10d %-10d %-6d %-9s %-14s %-12s\n",
			row.Name,
			row.Required,
			row.Stock,
			row.Shortfall,
			row.LeadTimeDays,
			deadline(row.OrderDeadline),
			UrgencyLabel(row.Urgency),
			row.OrderCost.StringFixed(2))
	}

	fmt.Fprintf(w, "\nShort components: %d\n", shortfall.ShortCount)
	fmt.Fprintf(w, "Total order cost: %s\n", shortfall.TotalOrderCost.StringFixed(2))
	return nil
}

func generateJSONOutput(w io.Writer, report *dto.ProductionReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func generateCSVOutput(w io.Writer, report *dto.ProductionReport) error {
	if report.Shortfall == nil {
		return fmt.Errorf("nothing to write: plan did not resolve")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"component_id", "component", "required", "stock", "shortfall",
		"lead_time_days", "order_deadline", "urgency", "order_cost",
	}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Shortfall.Rows {
		record := []string{
			string(row.ComponentID),
			row.Name,
			strconv.FormatInt(int64(row.Required), 10),
			strconv.FormatInt(int64(row.Stock), 10),
			strconv.FormatInt(int64(row.Shortfall), 10),
			strconv.Itoa(row.LeadTimeDays),
			deadline(row.OrderDeadline),
			row.Urgency.String(),
			row.OrderCost.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func generateSVGOutput(w io.Writer, report *dto.ProductionReport) error {
	if report.Shortfall == nil {
		return fmt.Errorf("nothing to write: plan did not resolve")
	}
	_, err := io.WriteString(w, NewGanttChart(report.Shortfall).GenerateSVG(report.Shortfall))
	return err
}

// Validation prints a graph validation result. It returns false when problems were found.
func Validation(w io.Writer, result *services.ValidationResult) bool {
	if result.Valid() {
		fmt.Fprintln(w, color.GreenString("✓ Graph is valid"))
		return true
	}

	fmt.Fprintln(w, color.HiRedString("✗ Graph has %d problem(s):", len(result.Errors)))
	for _, msg := range result.Errors {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
	return false
}

// ImportSummary prints the outcome of a BOM import
func ImportSummary(w io.Writer, result *dto.ImportResult) {
	color.New(color.FgGreen).Fprintf(w, "Created %d subassemblies\n", len(result.Created))
	for _, node := range result.Created {
		fmt.Fprintf(w, " - %s (%s)\n", node.Name, node.ID)
	}
	if len(result.NotImported) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Unknown components, not imported: %s\n", strings.Join(result.NotImported, ", "))
	}
	for _, msg := range result.Errors {
		color.New(color.FgHiRed).Fprintf(w, "%s\n", msg)
	}
}

// QuantitySummary prints the outcome of a bulk quantity update
func QuantitySummary(w io.Writer, result dto.BulkUpdateResult) {
	color.New(color.FgGreen).Fprintf(w, "Updated %d\n", result.Updated)
	if result.NotFound > 0 {
		color.New(color.FgYellow).Fprintf(w, "Not found %d: %s\n", result.NotFound, strings.Join(result.NotFoundNames, ", "))
	}
	if result.Invalid > 0 {
		color.New(color.FgHiRed).Fprintf(w, "Invalid %d\n", result.Invalid)
	}
}

func deadline(d *int) string {
	if d == nil {
		return "-"
	}
	return strconv.Itoa(*d)
}
