package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Novip1906/join/internal/models"
)

const (
	IconBoard   = "📋"
	IconContact = "👤"
	IconDone    = "✅"
	IconUrgent  = "⏫"
	IconMedium  = "🟰"
	IconLow     = "⏬"
	IconInfo    = "ℹ️"
	IconError   = "🧨"
	IconSeed    = "🌱"
)

var (
	cNavy   = lipgloss.Color("#2A3647")
	cBlue   = lipgloss.Color("#29ABE2")
	cUrgent = lipgloss.Color("#FF3D00")
	cMedium = lipgloss.Color("#FFA800")
	cLow    = lipgloss.Color("#7AE229")
	cMuted  = lipgloss.Color("244")
	cStory  = lipgloss.Color("#0038FF")
	cTech   = lipgloss.Color("#1FD7C1")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cNavy)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cLow)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cUrgent)

	Column      = lipgloss.NewStyle().Width(30).Padding(0, 1)
	ColumnTitle = lipgloss.NewStyle().Bold(true).Foreground(cNavy).MarginBottom(1)
	Card        = lipgloss.NewStyle().Width(28).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	Empty       = lipgloss.NewStyle().Width(28).BorderStyle(lipgloss.NormalBorder()).BorderForeground(cMuted).Foreground(cMuted).Align(lipgloss.Center)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func PrioText(p models.Priority) string {
	switch p {
	case models.PriorityUrgent:
		return lipgloss.NewStyle().Foreground(cUrgent).Render(IconUrgent + " urgent")
	case models.PriorityLow:
		return lipgloss.NewStyle().Foreground(cLow).Render(IconLow + " low")
	default:
		return lipgloss.NewStyle().Foreground(cMedium).Render(IconMedium + " medium")
	}
}

func CategoryBadge(category string) string {
	color := cStory
	if category == models.CategoryTechnicalTask {
		color = cTech
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(color).Padding(0, 1).Render(category)
}

// ProgressBar draws the subtask progress shown on a card, e.g. "███░░ 3/5".
// It is empty when the task has no subtasks.
func ProgressBar(done, total, width int) string {
	if total == 0 {
		return ""
	}
	filled := done * width / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d Subtasks", lipgloss.NewStyle().Foreground(cBlue).Render(bar), done, total)
}

// Initials renders assignee badges in their contact colours, sorted by name.
func Initials(assignees map[string]models.Assignee, initials func(string) string) string {
	list := make([]models.Assignee, 0, len(assignees))
	for _, a := range assignees {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	parts := make([]string, 0, len(list))
	for _, a := range list {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
		if a.Color != "" {
			style = style.Background(lipgloss.Color(a.Color))
		}
		parts = append(parts, style.Render(initials(a.Name)))
	}
	return strings.Join(parts, " ")
}

func RenderCard(t *models.Task, initials func(string) string) string {
	lines := []string{
		CategoryBadge(t.Category),
		H2.Render(t.Title),
	}
	if t.Description != "" {
		lines = append(lines, Muted.Render(t.Description))
	}
	if bar := ProgressBar(doneSubtasks(t), len(t.Subtasks), 10); bar != "" {
		lines = append(lines, bar)
	}
	footer := PrioText(t.Prio) + "  " + Muted.Render(fmt.Sprintf("#%d", t.Id))
	if len(t.AssignedTo) > 0 {
		footer = Initials(t.AssignedTo, initials) + "  " + footer
	}
	lines = append(lines, footer)
	return Card.Render(strings.Join(lines, "\n"))
}

func RenderColumn(title string, tasks []*models.Task, initials func(string) string) string {
	blocks := []string{ColumnTitle.Render(fmt.Sprintf("%s (%d)", title, len(tasks)))}
	if len(tasks) == 0 {
		blocks = append(blocks, Empty.Render(fmt.Sprintf("No tasks %s", strings.ToLower(title))))
	}
	for _, t := range tasks {
		blocks = append(blocks, RenderCard(t, initials))
	}
	return Column.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func JoinColumns(columns ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func doneSubtasks(t *models.Task) int {
	done, _ := t.SubtaskProgress()
	return done
}
