// Package tui is the interactive session: pick a period, preview the mix,
// confirm to commit history and get the email text.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mailmix/internal/app"
	"mailmix/internal/classify"
	"mailmix/internal/core"
	"mailmix/internal/history"
)

// model holds the whole session state. Every keypress runs at most one
// synchronous pass through the service; there are no background tasks.
type model struct {
	svc *app.Service

	periods     []core.Period
	periodIdx   int
	includeUsed bool

	articles []core.Article
	selected []core.SelectedArticle
	rec      history.Record

	subject  string
	body     string
	composed bool

	loading  bool
	fetchErr error
	notice   string

	width    int
	height   int
	quitting bool
}

type articlesMsg []core.Article

type fetchFailedMsg struct{ err error }

// initialModel builds the session over the given service.
func initialModel(svc *app.Service) model {
	return model{
		svc:     svc,
		periods: svc.Periods(time.Now()),
		loading: true,
	}
}

// fetchCmd runs one feed fetch off the update loop.
func fetchCmd(svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		articles, err := svc.Fetch(context.Background())
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return articlesMsg(articles)
	}
}

func (m model) Init() tea.Cmd {
	return fetchCmd(m.svc)
}

// reselect recomputes the preview for the current period and toggle.
func (m *model) reselect() {
	m.rec = m.svc.History()
	if m.fetchErr != nil {
		m.selected = nil
		return
	}
	m.selected = m.svc.Select(m.articles, m.periods[m.periodIdx], m.includeUsed)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case articlesMsg:
		m.loading = false
		m.fetchErr = nil
		m.articles = msg
		m.composed = false
		m.reselect()

	case fetchFailedMsg:
		m.loading = false
		m.fetchErr = msg.err
		m.selected = nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if !m.loading && m.periodIdx > 0 {
				m.periodIdx--
				m.composed = false
				m.reselect()
			}

		case "down", "j":
			if !m.loading && m.periodIdx < len(m.periods)-1 {
				m.periodIdx++
				m.composed = false
				m.reselect()
			}

		case "i":
			if !m.loading {
				m.includeUsed = !m.includeUsed
				m.composed = false
				m.reselect()
			}

		case "r":
			m.loading = true
			m.composed = false
			m.notice = ""
			return m, fetchCmd(m.svc)

		case "c":
			if err := m.svc.ClearHistory(); err != nil {
				m.notice = fmt.Sprintf("Historii se nepodařilo smazat: %v", err)
			} else {
				m.notice = "Historie smazána."
			}
			m.composed = false
			m.reselect()

		case "enter":
			if m.loading || m.fetchErr != nil || len(m.selected) == 0 {
				break
			}
			subject, body, err := m.svc.Confirm(m.selected, m.periods[m.periodIdx], m.includeUsed)
			if err != nil {
				m.notice = fmt.Sprintf("Chyba při generování: %v", err)
				break
			}
			m.subject = subject
			m.body = body
			m.composed = true
			m.notice = ""
			m.reselect()
		}
	}

	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✉️  iDoklad blog – strategický výběr článků"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Načítám RSS feed …\n")
		return b.String()
	}

	if m.fetchErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Chyba při načítání RSS: %v", m.fetchErr)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("[r] znovu načíst | [q] konec"))
		return b.String()
	}

	left := m.viewSelection()
	right := m.viewHistory()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, paneStyle.Render(left), paneStyle.Render(right)))

	if m.composed {
		b.WriteString("\n")
		b.WriteString(successStyle.Render("E-mail byl vygenerován!"))
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Předmět: "))
		b.WriteString(m.subject)
		b.WriteString("\n\n")
		b.WriteString(m.body)
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[↑/↓] měsíc | [i] zahrnout použité | [enter] vygenerovat | [r] aktualizovat | [c] smazat historii | [q] konec"))
	return b.String()
}

// viewSelection renders the period picker and the live selection preview.
func (m model) viewSelection() string {
	var b strings.Builder

	b.WriteString("Vyber měsíc:\n")
	for i, p := range m.periods {
		cursor := "  "
		line := p.String()
		if i == m.periodIdx {
			cursor = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	check := "[ ]"
	if m.includeUsed {
		check = "[x]"
	}
	b.WriteString(fmt.Sprintf("\n%s Zahrnout i dříve použité články\n\n", check))

	if len(m.selected) == 0 {
		b.WriteString(warnStyle.Render("Pro daný měsíc nejsou dostupné články."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("Vybraný mix článků:\n")
	for _, s := range m.selected {
		cat := s.Category
		if cat == "" {
			cat = classify.Uncategorized
		}
		cat = strings.ToLower(cat)
		b.WriteString(fmt.Sprintf("• %s\n", s.Article.Title))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s, %s, %s\n",
			cat, s.Article.Published.Format("02.01.2006"), s.Article.URL)))
		b.WriteString("\n")
	}
	return b.String()
}

// viewHistory renders the persisted history, newest period first.
func (m model) viewHistory() string {
	var b strings.Builder
	b.WriteString("Historie vybraných článků:\n")

	if len(m.rec) == 0 {
		b.WriteString(dimStyle.Render("(prázdná)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, key := range history.Keys(m.rec) {
		label := key
		if p, err := core.ParsePeriodKey(key); err == nil {
			label = p.String()
		}
		b.WriteString(titleStyle.Render(label))
		b.WriteString("\n")
		for _, link := range m.rec[key] {
			b.WriteString(dimStyle.Render("- " + link))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Run starts the interactive session and blocks until the user quits.
func Run(svc *app.Service) error {
	p := tea.NewProgram(initialModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive session: %w", err)
	}
	return nil
}
