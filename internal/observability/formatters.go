// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of a structured resume.
func (p *Printer) PrintResume(resume *types.Resume) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Location: %s\n", resume.Location))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.Email))
	sb.WriteString("\n")

	if len(resume.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(resume.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			group := resume.Skills[i]
			skills := group.Skills
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", group.Category, skills))
		}
		if len(resume.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Experiences: %d\n", len(resume.Experiences)))
	sb.WriteString(fmt.Sprintf("Projects:    %d", len(resume.Projects)))

	p.printBox("STRUCTURED RESUME", sb.String())
}

// PrintExperiences outputs the experience entries with their bullet counts.
func (p *Printer) PrintExperiences(experiences []types.Experience) {
	if len(experiences) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total experiences: %d\n\n", len(experiences)))

	count := min(len(experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := experiences[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, exp.Role))
		sb.WriteString(fmt.Sprintf("    %s", exp.Company))
		if exp.Date != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", exp.Date))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Bullets: %d\n", len(exp.Bullets)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more experiences", len(experiences)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE ENTRIES", sb.String())
}

// PrintExtraction outputs a preview of extracted raw text and whether it
// clears the auto-submit threshold.
func (p *Printer) PrintExtraction(text string, autoSubmit bool) {
	var sb strings.Builder

	preview := strings.TrimSpace(text)
	if len(preview) > 120 {
		preview = preview[:117] + "..."
	}
	for _, line := range strings.Split(preview, "\n") {
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nCharacters: %d\n", len(text)))
	if autoSubmit {
		sb.WriteString("Auto-submit: yes")
	} else {
		sb.WriteString("Auto-submit: no (below threshold)")
	}

	p.printBox("EXTRACTED TEXT", sb.String())
}
