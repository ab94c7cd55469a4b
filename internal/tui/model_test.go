package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/notify"
	"ProductShowcase/internal/session"
)

type chanPublisher chan notify.Completion

func (p chanPublisher) Publish(c notify.Completion) {
	select {
	case p <- c:
	default:
	}
}

func newTestModel(t *testing.T) (Model, chan notify.Completion) {
	t.Helper()

	events := make(chan notify.Completion, 4)
	sess := session.New("tui-test", catalog.Default(), session.Options{
		Publisher:      chanPublisher(events),
		AnimationDelay: time.Hour,
	})
	t.Cleanup(sess.Close)

	return New(sess, events, "TechStore Pro", time.Hour), events
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "TechStore Pro")
	assert.Contains(t, out, "Cart (0)")
	assert.Contains(t, out, "6 found")
	assert.Contains(t, out, "4.7 avg")
	assert.Contains(t, out, "$299 - $1299")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CursorNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"))
	assert.Equal(t, 3, m.cursor)

	for i := 0; i < 10; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 5, m.cursor)

	m = press(t, m, runes("k"))
	assert.Equal(t, 4, m.cursor)
}

func TestModel_SearchFiltersAndResetsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})

	m = press(t, m, runes("/"))
	require.True(t, m.search.Focused())

	for _, r := range "phone" {
		m = press(t, m, runes(string(r)))
	}

	assert.Equal(t, "phone", m.view.Query)
	require.Len(t, m.view.Products, 2)
	assert.Equal(t, "Neural Headphones", m.view.Products[0].Name)
	assert.Equal(t, "Quantum Phone 12", m.view.Products[1].Name)
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.search.Focused())
	assert.Equal(t, 2, m.view.Stats.Found)
}

func TestModel_LongQueryIsNotTruncated(t *testing.T) {
	m, _ := newTestModel(t)
	query := strings.Repeat("quantum phone ", 8)
	require.Greater(t, len(query), 64)

	m = press(t, m, runes("/"))
	for _, r := range query {
		m = press(t, m, runes(string(r)))
	}

	assert.Equal(t, query, m.view.Query)
	assert.Equal(t, query, m.search.Value())
	assert.Empty(t, m.view.Products)
}

func TestModel_EmptySearchResult(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("/"))
	for _, r := range "zzz" {
		m = press(t, m, runes(string(r)))
	}

	assert.Empty(t, m.view.Products)
	assert.Contains(t, m.View(), `No products match "zzz"`)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, m.view.CartCount)
	assert.Nil(t, m.view.Selected)
}

func TestModel_AddToCartPublishesOnce(t *testing.T) {
	m, events := newTestModel(t)

	next, cmd := m.Update(runes("a"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.view.CartCount)
	assert.True(t, m.view.Animating)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("a"))
	assert.Equal(t, 2, m.view.CartCount)

	require.Len(t, events, 1)
	msg := waitForCompletion(events)()
	c, ok := msg.(completionMsg)
	require.True(t, ok)
	assert.Equal(t, "UltraBook Pro X1", c.Data.FirstPurchase)

	next, cmd = m.Update(msg)
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "first purchase UltraBook Pro X1")
}

func TestModel_DetailAndBuy(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("b"))
	assert.Equal(t, 0, m.view.CartCount)
	assert.Contains(t, m.status, "enter first")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.view.Selected)
	assert.Equal(t, "SmartWatch Infinity", m.view.Selected.Name)
	assert.Contains(t, m.View(), "[b] Add to Cart")

	m = press(t, m, runes("b"))
	assert.Equal(t, 1, m.view.CartCount)
	assert.Nil(t, m.view.Selected)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.view.Selected)
	assert.Equal(t, 1, m.view.CartCount)
}

func TestModel_AnimationDoneRefreshes(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("a"))
	require.True(t, m.view.Animating)

	m.sess.Close()
	m = press(t, m, animationDoneMsg{})

	assert.ErrorIs(t, m.err, session.ErrClosed)
	assert.Contains(t, m.View(), "session closed")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWaitForCompletion_ClosedChannel(t *testing.T) {
	events := make(chan notify.Completion)
	close(events)

	assert.Nil(t, waitForCompletion(events)())
	assert.Nil(t, waitForCompletion(nil))
}

func TestStarBar(t *testing.T) {
	assert.Equal(t, "★★★★☆", starBar(4.9))
	assert.Equal(t, "★★★★★", starBar(5))
	assert.Equal(t, "☆☆☆☆☆", starBar(-1))
}
