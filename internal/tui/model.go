// Package tui is a terminal front end bound to a single showcase session.
package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/notify"
	"ProductShowcase/internal/session"
)

const helpLine = "/ search • ↑/↓ move • enter details • a add • b buy • esc close • q quit"

type completionMsg notify.Completion

type animationDoneMsg struct{}

// Model renders one session. Completion events arrive on events, which is
// normally fed by a notify.ChanSink.
type Model struct {
	sess   *session.Session
	events <-chan notify.Completion
	delay  time.Duration

	title  string
	search textinput.Model
	styles Styles

	view   session.View
	cursor int
	status string
	err    error
	width  int
}

func New(sess *session.Session, events <-chan notify.Completion, title string, delay time.Duration) Model {
	if delay <= 0 {
		delay = session.DefaultAnimationDelay
	}

	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = "Search products..."
	ti.CharLimit = 0

	m := Model{
		sess:   sess,
		events: events,
		delay:  delay,
		title:  title,
		search: ti,
		styles: DefaultStyles(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForCompletion(m.events)
}

// waitForCompletion blocks on the next event. It yields nil once the
// channel is closed, which ends the subscription.
func waitForCompletion(events <-chan notify.Completion) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-events
		if !ok {
			return nil
		}
		return completionMsg(c)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case completionMsg:
		m.status = fmt.Sprintf("🎉 Block complete: first purchase %s", msg.Data.FirstPurchase)
		m.refresh()
		return m, waitForCompletion(m.events)

	case animationDoneMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.view.Query {
		m.apply(m.sess.SetQuery(q))
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		cmd := m.search.Focus()
		return m, cmd

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Products)-1 {
			m.cursor++
		}

	case "enter":
		if p, ok := m.highlighted(); ok {
			m.apply(m.sess.SelectProduct(p.ID))
		}

	case "esc":
		m.apply(m.sess.DismissSelection())

	case "a":
		if p, ok := m.highlighted(); ok {
			if m.apply(m.sess.AddToCart(p.ID)) {
				return m, m.animationTick()
			}
		}

	case "b":
		err := m.sess.PurchaseSelected()
		if errors.Is(err, session.ErrNoSelection) {
			m.status = "Open a product with enter first"
			return m, nil
		}
		if m.apply(err) {
			return m, m.animationTick()
		}
	}

	return m, nil
}

func (m Model) animationTick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return animationDoneMsg{} })
}

func (m Model) highlighted() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Products) {
		return catalog.Product{}, false
	}
	return m.view.Products[m.cursor], true
}

// apply records err, refreshes the view and reports whether the operation
// succeeded.
func (m *Model) apply(err error) bool {
	m.err = err
	m.refresh()
	return err == nil
}

func (m *Model) refresh() {
	v, err := m.sess.Snapshot()
	if err != nil {
		m.err = err
		return
	}
	m.view = v
	if m.cursor >= len(v.Products) {
		m.cursor = max(len(v.Products)-1, 0)
	}
}

func (m Model) View() string {
	var sb strings.Builder

	cart := m.styles.Cart
	if m.view.Animating {
		cart = m.styles.CartBump
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render(m.title+" 🚀")+"  ",
		cart.Render(fmt.Sprintf("🛒 Cart (%d)", m.view.CartCount)),
	)
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")

	if len(m.view.Products) == 0 {
		sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("No products match %q", m.view.Query)))
		sb.WriteString("\n")
	}
	for i, p := range m.view.Products {
		marker := "  "
		style := m.styles.Item
		if i == m.cursor {
			marker = m.styles.Cursor.Render("> ")
		}
		if m.view.Selected != nil && m.view.Selected.ID == p.ID {
			style = m.styles.Selected
		}
		line := fmt.Sprintf("%-22s %s %s %8s",
			p.Name,
			m.styles.Tag.Render(fmt.Sprintf("%-10s", p.Category)),
			m.styles.Stars.Render(starBar(p.Rating)),
			catalog.FormatPrice(p.PriceCents),
		)
		sb.WriteString(marker + style.Render(line) + "\n")
	}

	if sel := m.view.Selected; sel != nil {
		detail := fmt.Sprintf("%s\n%s (%.1f/5)\n\n%s\n\n%s   [b] Add to Cart  [esc] Close",
			m.styles.Title.Render(sel.Name),
			m.styles.Stars.Render(starBar(sel.Rating)), sel.Rating,
			sel.Description,
			catalog.FormatPrice(sel.PriceCents),
		)
		sb.WriteString("\n")
		sb.WriteString(m.styles.Detail.Render(detail))
		sb.WriteString("\n")
	}

	st := m.view.Stats
	sb.WriteString(m.styles.Footer.Render(fmt.Sprintf(
		"🎯 %d found   ⭐ %s avg   🛒 %d in cart   💰 %s",
		st.Found, st.AverageRatingText(), m.view.CartCount, st.PriceRangeText(),
	)))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status) + "\n")
	}
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	sb.WriteString(m.styles.Help.Render(helpLine))
	return sb.String()
}

func starBar(rating float64) string {
	filled := min(max(int(math.Floor(rating)), 0), 5)
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}
