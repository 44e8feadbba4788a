package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/goals"
	"github.com/abhisek/wordpath/internal/progress"
	"github.com/abhisek/wordpath/internal/schedule"
	"github.com/abhisek/wordpath/internal/vocab"
)

const (
	defaultWidth = 60
	dateLayout   = "2006-01-02"
	ruleRune     = "─"
)

// Renderer formats engine data for the terminal.
type Renderer struct {
	st    styles
	width int
	now   func() time.Time
}

// New creates a Renderer. With color false the output has no ANSI styling.
func New(color bool) *Renderer {
	st := plainStyles()
	if color {
		st = colorStyles()
	}
	return &Renderer{st: st, width: defaultWidth, now: time.Now}
}

func (r *Renderer) rule(b *strings.Builder) {
	b.WriteString(r.st.dim.Render(strings.Repeat(ruleRune, r.width)))
	b.WriteByte('\n')
}

func (r *Renderer) bar(label string, percent float64) string {
	return ProgressBar{Label: label, Percent: percent, Width: r.width}.render(r.st)
}

// Sets renders the catalog as a table.
func (r *Renderer) Sets(sets []vocab.Set) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s  %-24s  %-12s  %5s  %7s\n", "ID", "Name", "Level", "Ages", "Symbols")
	r.rule(&b)
	for _, s := range sets {
		fmt.Fprintf(&b, "%-20s  %s  %-12s  %5s  %7d\n",
			s.ID, fit(s.Name, 24), s.Level.DisplayName(), ages(s.AgeRange), len(s.Symbols))
	}
	fmt.Fprintf(&b, "\n%d sets\n", len(sets))
	return b.String()
}

// Set renders one set with its symbols. Symbols that do not resolve are
// shown as "?".
func (r *Renderer) Set(ctx context.Context, s vocab.Set, symbols vocab.SymbolLookup) string {
	var b strings.Builder
	b.WriteString(r.st.title.Render(s.Name))
	fmt.Fprintf(&b, "  %s\n", r.st.dim.Render(s.ID))
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n", s.Description)
	}
	fmt.Fprintf(&b, "Level: %s   Ages: %s\n", s.Level.DisplayName(), ages(s.AgeRange))
	if len(s.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(s.Categories, ", "))
	}
	r.rule(&b)
	for i, id := range s.Symbols {
		name := "?"
		if symbols != nil {
			if sym, err := symbols.Resolve(ctx, id); err == nil {
				name = sym.Name
			}
		}
		fmt.Fprintf(&b, "%3d. %-16s %s\n", i+1, id, r.st.dim.Render(name))
	}
	return b.String()
}

// Progress renders a learner's progress through one set.
func (r *Renderer) Progress(p *progress.VocabularyProgress) string {
	var b strings.Builder
	b.WriteString(r.st.title.Render(p.VocabularySetID))
	fmt.Fprintf(&b, "  %s\n", r.st.dim.Render("learner "+p.UserID))
	r.rule(&b)
	b.WriteString(r.bar("Mastery", float64(p.MasteryLevel)))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d   of %d\n",
		r.st.good.Render("mastered"), len(p.MasteredSymbols),
		r.st.accent.Render("learning"), len(p.LearningSymbols),
		r.st.dim.Render("not started"), len(p.NotStartedSymbols),
		p.TotalSymbols)

	b.WriteString(r.schedule(p.LastAssessment, p.NextAssessment))

	if next := progress.NextStep(p.LearningPath); next != nil {
		fmt.Fprintf(&b, "Next step: %s %s (%s)\n", next.Type, next.SymbolID, next.Difficulty)
	}
	return b.String()
}

func (r *Renderer) schedule(last, next *time.Time) string {
	if last == nil {
		return "Not assessed yet; an assessment is due.\n"
	}
	due := "due now"
	if d := schedule.DaysUntil(next, r.now()); d > 0 {
		due = fmt.Sprintf("in %d days", d)
	}
	return fmt.Sprintf("Last assessed %s, next %s (%s)\n",
		last.Format(dateLayout), next.Format(dateLayout), due)
}

// Overview renders one progress bar per set.
func (r *Renderer) Overview(userID string, all []progress.VocabularyProgress) string {
	var b strings.Builder
	b.WriteString(r.st.title.Render("Progress for " + userID))
	b.WriteByte('\n')
	r.rule(&b)
	for _, p := range all {
		label := fmt.Sprintf("%-20s", p.VocabularySetID)
		b.WriteString(r.bar(label, float64(p.MasteryLevel)))
		if schedule.IsDue(p.NextAssessment, r.now()) {
			b.WriteString("  " + r.st.accent.Render("assessment due"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Assessment renders the questions of an assessment without answers.
func (r *Renderer) Assessment(a *assessment.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", r.st.title.Render("Assessment "+a.ID), r.st.dim.Render(string(a.Type)))
	r.rule(&b)
	for _, q := range a.Questions {
		fmt.Fprintf(&b, "%s  %s\n", r.st.heading.Render(q.ID), q.Text)
		for _, o := range q.Options {
			fmt.Fprintf(&b, "      - %s\n", o)
		}
	}
	if len(a.Questions) == 0 {
		b.WriteString("No questions could be generated for this set.\n")
	}
	return b.String()
}

// Results renders the scored outcome of an assessment.
func (r *Renderer) Results(a *assessment.Assessment) string {
	res := a.Results
	var b strings.Builder
	b.WriteString(r.st.title.Render("Assessment results"))
	fmt.Fprintf(&b, "  %s\n", r.st.dim.Render(a.VocabularySetID))
	r.rule(&b)
	b.WriteString(r.bar("Accuracy", res.Accuracy))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%d of %d correct, %.1fs per question, level %s\n",
		res.CorrectAnswers, res.TotalQuestions, res.AverageTimePerQuestion,
		r.st.heading.Render(res.MasteryLevel.DisplayName()))

	for _, t := range res.ByType {
		fmt.Fprintf(&b, "  %-20s %d/%d\n", t.Type.DisplayName(), t.Correct, t.Total)
	}

	r.list(&b, "Strengths", res.Strengths, r.st.good)
	r.list(&b, "Needs work", res.Weaknesses, r.st.bad)
	r.list(&b, "Recommendations", res.Recommendations, r.st.dim)
	r.list(&b, "Next steps", res.NextSteps, r.st.dim)
	return b.String()
}

func (r *Renderer) list(b *strings.Builder, title string, items []string, st lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", r.st.heading.Render(title))
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", st.Render(it))
	}
}

// History renders past assessments, newest first.
func (r *Renderer) History(recs []schedule.Record) string {
	if len(recs) == 0 {
		return "No assessments recorded.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-10s  %-10s  %8s  %s\n", "Assessment", "Completed", "Type", "Accuracy", "Level")
	r.rule(&b)
	for _, rec := range recs {
		fmt.Fprintf(&b, "%-36s  %-10s  %-10s  %7.1f%%  %s\n",
			rec.AssessmentID, rec.CompletedAt.Format(dateLayout), rec.Type, rec.Accuracy,
			rec.MasteryLevel.DisplayName())
	}
	return b.String()
}

// Goal renders a goal with its milestones.
func (r *Renderer) Goal(g *goals.Goal) string {
	var b strings.Builder
	b.WriteString(r.st.title.Render(g.Title))
	status := r.st.accent.Render("active")
	if g.IsCompleted {
		status = r.st.good.Render("completed")
	}
	fmt.Fprintf(&b, "  %s\n", status)
	fmt.Fprintf(&b, "%s  %s  target %s\n", r.st.dim.Render(g.ID), g.Type, g.TargetDate.Format(dateLayout))
	if g.Description != "" {
		fmt.Fprintf(&b, "%s\n", g.Description)
	}
	r.rule(&b)
	b.WriteString(r.bar("Overall", g.Progress))
	b.WriteByte('\n')
	for _, m := range g.Milestones {
		mark := "[ ]"
		if m.IsCompleted {
			mark = r.st.good.Render("[x]")
		}
		fmt.Fprintf(&b, "%s %s  %s\n", mark, m.Title, r.st.dim.Render(fmt.Sprintf("%.0f%%  %s", m.Progress, m.ID)))
	}
	return b.String()
}

// Goals renders a one-line summary per goal.
func (r *Renderer) Goals(all []goals.Goal) string {
	if len(all) == 0 {
		return "No goals yet.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-28s  %-10s  %8s\n", "ID", "Title", "Status", "Progress")
	r.rule(&b)
	for _, g := range all {
		status := "active"
		if g.IsCompleted {
			status = "completed"
		}
		fmt.Fprintf(&b, "%-36s  %s  %-10s  %7.0f%%\n", g.ID, fit(g.Title, 28), status, g.Progress)
	}
	return b.String()
}

// fit truncates s to width terminal cells, marking the cut with "...", and
// pads it to exactly width cells.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "...")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func ages(a vocab.AgeRange) string {
	if a.Min == 0 && a.Max == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", a.Min, a.Max)
}
