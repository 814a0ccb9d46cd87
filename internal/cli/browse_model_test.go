package cli

import (
	"testing"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedBrowseModel(t *testing.T) *browseModel {
	t.Helper()
	m := newBrowseModel(newTestApp(t), domain.ViewSales, "")
	ov := &service.Overview{
		View: domain.ViewSales,
		Roots: []*hierarchy.Node{
			{
				ID: "p:p1", Kind: hierarchy.KindProject, Name: "P1",
				Children: []*hierarchy.Node{
					{ID: "a1", Kind: hierarchy.KindArticle, Name: "A1"},
					{ID: "a2", Kind: hierarchy.KindArticle, Name: "A2"},
				},
			},
		},
	}
	updated, _ := m.Update(overviewLoadedMsg{ov: ov})
	return updated.(*browseModel)
}

func TestBrowseModel_FlattensForest(t *testing.T) {
	m := loadedBrowseModel(t)

	require.Len(t, m.rows, 3)
	assert.Equal(t, "P1", m.rows[0].node.Name)
	assert.Equal(t, 1, m.rows[1].depth)
}

func TestBrowseModel_CursorStaysInBounds(t *testing.T) {
	m := loadedBrowseModel(t)

	for i := 0; i < 10; i++ {
		m.moveCursor(1)
	}
	assert.Equal(t, 2, m.cursor)

	for i := 0; i < 10; i++ {
		m.moveCursor(-1)
	}
	assert.Equal(t, 0, m.cursor)
}

func TestBrowseModel_FoldCollapsesChildren(t *testing.T) {
	m := loadedBrowseModel(t)

	m.toggleFold()
	require.Len(t, m.rows, 1)
	assert.True(t, m.rows[0].collapsed)

	m.toggleFold()
	assert.Len(t, m.rows, 3)
}

func TestBrowseModel_FoldOnLeafIsNoop(t *testing.T) {
	m := loadedBrowseModel(t)
	m.moveCursor(1)

	m.toggleFold()

	assert.Len(t, m.rows, 3)
}

func TestBrowseModel_ViewKeySwitchesMode(t *testing.T) {
	m := loadedBrowseModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})

	bm := updated.(*browseModel)
	assert.Equal(t, domain.ViewProduction, bm.view)
	assert.True(t, bm.loading)
	assert.NotNil(t, cmd, "switching views reloads the overview")
}

func TestBrowseModel_QuitKey(t *testing.T) {
	m := loadedBrowseModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowseModel_ViewRendersRows(t *testing.T) {
	m := loadedBrowseModel(t)

	out := m.View()

	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "A1")
	assert.Contains(t, out, "LEITSTAND")
}

func TestBrowseModel_ViewShowsError(t *testing.T) {
	m := newBrowseModel(newTestApp(t), domain.ViewSales, "")
	updated, _ := m.Update(overviewLoadedMsg{err: assert.AnError})

	out := updated.(*browseModel).View()

	assert.Contains(t, out, "Error")
}
