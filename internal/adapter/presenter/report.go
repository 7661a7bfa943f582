package presenter

import (
	"fmt"
	"html"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Supported report formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
)

// Report renders MeetingMinutes into a distributable document. Timestamps
// come from the minutes themselves, so rendering the same minutes twice
// yields identical output.
type Report struct {
	groupByOwner bool
}

// NewReport creates a report renderer. groupByOwner switches the action item
// section to per-owner subsections.
func NewReport(groupByOwner bool) *Report {
	return &Report{groupByOwner: groupByOwner}
}

// Render produces the report in the requested format.
func (r *Report) Render(m *entities.MeetingMinutes, format string) (string, error) {
	switch format {
	case FormatMarkdown:
		return r.markdown(m), nil
	case FormatText:
		return r.text(m), nil
	case FormatHTML:
		return r.html(m), nil
	default:
		return "", fmt.Errorf("%w: %s", uerrors.ErrInvalidFormat, format)
	}
}

func (r *Report) markdown(m *entities.MeetingMinutes) string {
	var b strings.Builder

	title := m.Title
	if title == "" {
		title = "Meeting Minutes"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", m.GeneratedAt.Format("January 2, 2006 at 3:04 PM"))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString(m.Summary)
	b.WriteString("\n\n")

	if len(m.Attendees) > 0 {
		b.WriteString("## Attendees\n\n")
		for _, attendee := range m.Attendees {
			fmt.Fprintf(&b, "- %s\n", attendee)
		}
		b.WriteString("\n")
	}

	if len(m.Decisions) > 0 {
		b.WriteString("## Key Decisions\n\n")
		for i, decision := range m.Decisions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, decision)
		}
		b.WriteString("\n")
	}

	if len(m.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		if r.groupByOwner {
			for _, group := range groupActions(m.ActionItems) {
				fmt.Fprintf(&b, "### %s\n\n", group.owner)
				for _, item := range group.items {
					fmt.Fprintf(&b, "- %s%s%s\n", item.Task, mdDeadline(item), mdPriority(item))
				}
				b.WriteString("\n")
			}
		} else {
			for i, item := range m.ActionItems {
				fmt.Fprintf(&b, "%d. %s\n", i+1, item.Task)
				if details := mdDetails(item); details != "" {
					fmt.Fprintf(&b, "   %s\n", details)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(m.DiscussionPoints) > 0 {
		b.WriteString("## Discussion Points\n\n")
		for _, point := range m.DiscussionPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
		b.WriteString("\n")
	}

	if len(m.Topics) > 0 {
		b.WriteString("## Topics Discussed\n\n")
		for _, topic := range m.Topics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n*Meeting minutes generated on %s*\n", m.GeneratedAt.Format("2006-01-02"))
	return b.String()
}

func (r *Report) text(m *entities.MeetingMinutes) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 20)

	b.WriteString(rule + "\n")
	title := m.Title
	if title == "" {
		title = "MEETING MINUTES"
	}
	b.WriteString(strings.ToUpper(title) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", m.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("EXECUTIVE SUMMARY\n" + sub + "\n")
	b.WriteString(m.Summary + "\n\n")

	if len(m.Attendees) > 0 {
		b.WriteString("ATTENDEES\n" + sub + "\n")
		for _, attendee := range m.Attendees {
			fmt.Fprintf(&b, "- %s\n", attendee)
		}
		b.WriteString("\n")
	}

	if len(m.Decisions) > 0 {
		b.WriteString("KEY DECISIONS\n" + sub + "\n")
		for i, decision := range m.Decisions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, decision)
		}
		b.WriteString("\n")
	}

	if len(m.ActionItems) > 0 {
		b.WriteString("ACTION ITEMS\n" + sub + "\n")
		if r.groupByOwner {
			for _, group := range groupActions(m.ActionItems) {
				fmt.Fprintf(&b, "\n%s:\n", group.owner)
				for _, item := range group.items {
					fmt.Fprintf(&b, "  - %s%s%s\n", item.Task, textDeadline(item), textPriority(item))
				}
			}
		} else {
			for i, item := range m.ActionItems {
				owner := ""
				if item.Owner != "" {
					owner = " - " + item.Owner
				}
				fmt.Fprintf(&b, "%d. %s%s%s\n", i+1, item.Task, owner, textDeadline(item))
			}
		}
		b.WriteString("\n")
	}

	if len(m.Topics) > 0 {
		b.WriteString("TOPICS DISCUSSED\n" + sub + "\n")
		for _, topic := range m.Topics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("End of Meeting Minutes\n")
	return b.String()
}

// html converts the markdown rendering line by line into a standalone page.
func (r *Report) html(m *entities.MeetingMinutes) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Meeting Minutes</title></head><body>\n")

	for _, line := range strings.Split(r.markdown(m), "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(line[4:]))
		case strings.HasPrefix(line, "## "):
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(line[3:]))
		case strings.HasPrefix(line, "# "):
			fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(line[2:]))
		case strings.HasPrefix(line, "- "):
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(line[2:]))
		case strings.TrimSpace(line) == "---":
			b.WriteString("<hr>\n")
		case strings.TrimSpace(line) != "":
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
		}
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

type ownerGroup struct {
	owner string
	items []entities.ActionItem
}

// groupActions partitions items by owner in first-appearance order, with
// unassigned items under "Unassigned" at the end. Owner names compare
// case-insensitively; the group header keeps the first-seen spelling.
func groupActions(items []entities.ActionItem) []ownerGroup {
	var groups []ownerGroup
	index := make(map[string]int)
	var unassigned []entities.ActionItem

	for _, item := range items {
		if item.Owner == "" {
			unassigned = append(unassigned, item)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(item.Owner))
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ownerGroup{owner: item.Owner})
		}
		groups[i].items = append(groups[i].items, item)
	}

	if len(unassigned) > 0 {
		groups = append(groups, ownerGroup{owner: "Unassigned", items: unassigned})
	}
	return groups
}

func mdDeadline(item entities.ActionItem) string {
	if item.Deadline == "" {
		return ""
	}
	return " **Due:** " + item.Deadline
}

func mdPriority(item entities.ActionItem) string {
	if item.Priority == "" || item.Priority == entities.PriorityMedium {
		return ""
	}
	return " `" + strings.ToUpper(item.Priority) + "`"
}

func mdDetails(item entities.ActionItem) string {
	var parts []string
	if item.Owner != "" {
		parts = append(parts, "**Owner:** "+item.Owner)
	}
	if item.Deadline != "" {
		parts = append(parts, "**Due:** "+item.Deadline)
	}
	if item.Priority != "" && item.Priority != entities.PriorityMedium {
		parts = append(parts, "**Priority:** "+capitalize(item.Priority))
	}
	return strings.Join(parts, " - ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func textDeadline(item entities.ActionItem) string {
	if item.Deadline == "" {
		return ""
	}
	return " (Due: " + item.Deadline + ")"
}

func textPriority(item entities.ActionItem) string {
	if item.Priority == "" || item.Priority == entities.PriorityMedium {
		return ""
	}
	return " [" + strings.ToUpper(item.Priority) + "]"
}
