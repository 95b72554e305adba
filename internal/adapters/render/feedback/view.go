package feedback

import (
	"fmt"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderToast(message string, s styles) string {
	return s.success.Render("✓ " + message)
}

func renderError(message string, s styles) string {
	return s.failure.Render("✗ " + message)
}

func renderNotice(message string, s styles) string {
	return s.notice.Render(message)
}

// RenderRecord lays out a submission record the way it will be posted.
func RenderRecord(record domain.SubmissionRecord) string {
	s := newStyles()

	endDate := record.SubscriptionEndDate
	if endDate == "" {
		endDate = s.faint.Render("none")
	}

	rows := []string{
		s.title.Render("Credit entry"),
		row("name", record.Name, s),
		row("plan", record.PlanPattern, s),
		row("plan total", domain.FormatNumber(domain.SumPlan(record.PlanPattern)), s),
		row("current credits", record.CurrentCredits, s),
		row("subscription end date", endDate, s),
		row("credit change", renderChange(record.CreditAction, record.CreditCount, s), s),
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderPlans lists the allowed plans with their totals. When current is not
// nil each plan also shows the credit change it would produce.
func RenderPlans(current *float64) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Available plans"),
		s.header.Render(fmt.Sprintf("plans: %d", len(domain.AllowedPlans()))),
	}

	for _, plan := range domain.AllowedPlans() {
		total := domain.SumPlan(plan)
		line := row(plan, "total "+domain.FormatNumber(total), s)
		if current != nil {
			record := domain.CollectFormData(domain.FormValues{
				CurrentCredits:    domain.FormatNumber(*current),
				DurationSelection: plan,
			})
			line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", renderChange(record.CreditAction, record.CreditCount, s))
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(label string, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label), s.value.Render(value))
}

func renderChange(action domain.CreditAction, count string, s styles) string {
	if action == domain.CreditActionRemove {
		return s.remove.Render("remove " + count)
	}
	return s.add.Render("add " + count)
}
