package style

import (
	"fmt"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/plan"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderPlan(p *plan.Plan, dryRun bool) string
	RenderReceipt(r *receipt.Receipt) string
	RenderPathEntries(entries []string, owned map[string]bool) string
	RenderError(err error) string
	RenderProgress(current, total int, message string) string
}

// NewRenderer picks the terminal renderer when stdout is an interactive
// terminal with color support, the plain renderer otherwise.
func NewRenderer(fd uintptr) Renderer {
	if isatty.IsTerminal(fd) && termenv.ColorProfile() != termenv.Ascii {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderPlan renders the staging operations an install will perform.
func (r *TerminalRenderer) RenderPlan(p *plan.Plan, dryRun bool) string {
	if p == nil || len(p.Operations) == 0 {
		return MutedStyle.Render("Nothing to do")
	}

	var result strings.Builder
	title := "Install plan"
	if dryRun {
		title += " (dry run)"
	}
	result.WriteString(TitleStyle.Render(title) + "\n\n")

	for _, op := range p.Operations {
		result.WriteString(r.renderOperation(op) + "\n")
	}

	result.WriteString("\n" + MutedStyle.Render(
		fmt.Sprintf("%d files, %d directories", len(p.Files), len(p.Dirs))))
	return result.String()
}

// renderOperation renders a single operation line
func (r *TerminalRenderer) renderOperation(op plan.Operation) string {
	var typeStyle *pterm.Style
	var typeName string
	switch op.Type {
	case plan.OperationCreateDir:
		typeStyle = pterm.NewStyle(pterm.FgCyan)
		typeName = "mkdir"
	case plan.OperationCopyFile:
		typeStyle = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
		typeName = "copy"
	case plan.OperationWriteFile:
		typeStyle = pterm.NewStyle(pterm.FgMagenta)
		typeName = "write"
	case plan.OperationDeleteFile, plan.OperationDeleteDir:
		typeStyle = pterm.NewStyle(pterm.FgRed)
		typeName = "remove"
	default:
		typeStyle = pterm.Info.MessageStyle
		typeName = string(op.Type)
	}

	opType := typeStyle.Sprintf("%-6s", typeName)

	var desc string
	if op.Source != "" && op.Target != "" {
		desc = fmt.Sprintf("%s → %s",
			PathStyle.Render(op.Source),
			PathStyle.Render(op.Target))
	} else if op.Target != "" {
		desc = PathStyle.Render(op.Target)
	} else {
		desc = op.Description
	}

	return fmt.Sprintf("%s %s %s", PendingIndicator, opType, desc)
}

// RenderReceipt renders what an install recorded, for the status
// command.
func (r *TerminalRenderer) RenderReceipt(rec *receipt.Receipt) string {
	var result strings.Builder

	result.WriteString(TitleStyle.Render(rec.Product+" "+rec.Version) + "\n\n")
	result.WriteString(fmt.Sprintf("%s %s %s\n", SuccessIndicator,
		SubtitleStyle.Render("Installed"), MutedStyle.Render(rec.InstalledAt.Format("2006-01-02 15:04"))))
	result.WriteString(fmt.Sprintf("  %s %s\n", MutedStyle.Render("location"), PathStyle.Render(rec.InstallDir)))
	result.WriteString(fmt.Sprintf("  %s %d\n", MutedStyle.Render("files"), len(rec.Files)))

	for _, entry := range rec.PathEntries {
		result.WriteString(fmt.Sprintf("%s %s %s\n", InfoIndicator,
			PathOpStyle.Render("path"), PathStyle.Render(entry)))
	}
	for _, link := range rec.Shortcuts {
		result.WriteString(fmt.Sprintf("%s %s %s\n", InfoIndicator,
			ShortcutStyle.Render("shortcut"), PathStyle.Render(link)))
	}
	if rec.UninstallEntry {
		result.WriteString(fmt.Sprintf("%s %s listed in Add/Remove Programs\n", InfoIndicator,
			RegistryStyle.Render("registry")))
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderPathEntries renders the current PATH list, highlighting the
// entries this product owns.
func (r *TerminalRenderer) RenderPathEntries(entries []string, owned map[string]bool) string {
	if len(entries) == 0 {
		return MutedStyle.Render("PATH is empty")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("PATH entries") + "\n\n")
	for _, entry := range entries {
		if owned[strings.ToLower(entry)] {
			result.WriteString(fmt.Sprintf("%s %s\n", SuccessIndicator, PathOpStyle.Render(entry)))
		} else {
			result.WriteString(fmt.Sprintf("%s %s\n", InfoIndicator, NormalStyle.Render(entry)))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// RenderProgress renders a progress indicator
func (r *TerminalRenderer) RenderProgress(current, total int, message string) string {
	percentage := float64(current) / float64(total)
	barWidth := 20
	filled := int(percentage * float64(barWidth))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf("%s [%s] %d/%d %s",
		ProgressIndicator,
		pterm.Info.MessageStyle.Sprint(bar),
		current,
		total,
		message)
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderPlan renders a plain operation list
func (r *PlainRenderer) RenderPlan(p *plan.Plan, dryRun bool) string {
	if p == nil || len(p.Operations) == 0 {
		return "Nothing to do"
	}

	var result strings.Builder
	for _, op := range p.Operations {
		if op.Source != "" {
			result.WriteString(fmt.Sprintf("%s: %s -> %s\n", op.Type, op.Source, op.Target))
		} else {
			result.WriteString(fmt.Sprintf("%s: %s\n", op.Type, op.Target))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderReceipt renders a plain install record
func (r *PlainRenderer) RenderReceipt(rec *receipt.Receipt) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s\n", rec.Product, rec.Version))
	result.WriteString(fmt.Sprintf("installed: %s\n", rec.InstalledAt.Format("2006-01-02 15:04")))
	result.WriteString(fmt.Sprintf("location: %s\n", rec.InstallDir))
	result.WriteString(fmt.Sprintf("files: %d\n", len(rec.Files)))
	for _, entry := range rec.PathEntries {
		result.WriteString(fmt.Sprintf("path: %s\n", entry))
	}
	for _, link := range rec.Shortcuts {
		result.WriteString(fmt.Sprintf("shortcut: %s\n", link))
	}
	if rec.UninstallEntry {
		result.WriteString("registry: listed in Add/Remove Programs\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderPathEntries renders a plain PATH listing
func (r *PlainRenderer) RenderPathEntries(entries []string, owned map[string]bool) string {
	if len(entries) == 0 {
		return "PATH is empty"
	}

	var result strings.Builder
	for _, entry := range entries {
		marker := " "
		if owned[strings.ToLower(entry)] {
			marker = "*"
		}
		result.WriteString(fmt.Sprintf("%s %s\n", marker, entry))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// RenderProgress renders plain progress
func (r *PlainRenderer) RenderProgress(current, total int, message string) string {
	return fmt.Sprintf("Progress: %d/%d - %s", current, total, message)
}
