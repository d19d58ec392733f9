package app

import (
	"fmt"
	"strings"

	"taskbot/internal/scoring"
	"taskbot/internal/shorthand"
	"taskbot/internal/store"
)

func renderCreated(number int, fields shorthand.Fields) string {
	parts := []string{fmt.Sprintf("✅ *#%d* %s", number, fields.Title)}
	if fields.Tag != "" {
		parts = append(parts, "@"+fields.Tag)
	}
	if fields.Project != "" {
		parts = append(parts, "📁"+fields.Project)
	}
	if fields.Priority != "" {
		parts = append(parts, "⚡"+fields.Priority)
	}
	if fields.Due != "" {
		parts = append(parts, "📅"+scoring.FormatDue(fields.Due))
	}
	return strings.Join(parts, " ")
}

// renderTask formats one listed task. position is the 1-based display
// position, which is deliberately not the stored task number.
func renderTask(task store.Task, position int) string {
	parts := []string{fmt.Sprintf("%d. %s", position, task.Title)}
	if task.Tag != "" {
		parts = append(parts, "@"+task.Tag)
	}
	if task.Project != "" {
		parts = append(parts, "|e "+task.Project)
	}
	if task.PriorityCode != "" {
		parts = append(parts, "|p "+task.PriorityCode)
	}
	if task.DueCode != "" {
		parts = append(parts, "📅"+scoring.FormatDue(task.DueCode))
	}
	return strings.Join(parts, " ")
}

func renderList(tasks []store.Task, tag, project string) string {
	header := "📋 *Tareas*"
	if tag != "" {
		header += " @" + tag
	}
	if project != "" {
		header += " — " + project
	}

	lines := []string{header, ""}
	for i, task := range tasks {
		lines = append(lines, renderTask(task, i+1))
	}
	return strings.Join(lines, "\n")
}

func renderEmpty(tag, project string) string {
	label := ""
	if tag != "" {
		label = " con @" + tag
	} else if project != "" {
		label = fmt.Sprintf(" en proyecto '%s'", project)
	}
	return fmt.Sprintf("📭 No hay tareas%s.", label)
}
