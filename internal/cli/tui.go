package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/floorlay/floorlay/pkg/engine"
	"github.com/floorlay/floorlay/pkg/plan"
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle   = lipgloss.NewStyle().Foreground(colorGray)
	editorErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// moveStep is the world-space step for keyboard moves, in pixels.
const moveStep = 10.0

// placementColumn lays newly placed items out on a simple grid so keyboard
// placement never stacks everything on one point.
const placementColumn = 160.0

// EditorModel is the bubbletea model for the interactive plan editor. All
// project mutations go through the engine, so undo/redo and task synthesis
// behave exactly as in the other frontends.
type EditorModel struct {
	eng    *engine.Engine
	cursor int
	height int
	offset int
	status string
	errMsg string
}

// NewEditorModel creates an editor over an engine.
func NewEditorModel(eng *engine.Engine) EditorModel {
	return EditorModel{eng: eng, height: 15}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	items := m.eng.Project().Items

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		// Any in-progress gesture is finalized before leaving.
		m.eng.Blur()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}

	case " ":
		if m.cursor < len(items) {
			m.eng.ToggleSelect(items[m.cursor].ID)
		}
	case "c":
		m.eng.ClearSelection()
		m.status = "selection cleared"

	case "enter":
		if m.cursor < len(items) {
			m = m.placeCursorItem(items[m.cursor])
		}

	case "H", "left":
		m = m.apply(m.eng.MoveSelectionBy(-moveStep, 0), "moved")
	case "L", "right":
		m = m.apply(m.eng.MoveSelectionBy(moveStep, 0), "moved")
	case "K":
		m = m.apply(m.eng.MoveSelectionBy(0, -moveStep), "moved")
	case "J":
		m = m.apply(m.eng.MoveSelectionBy(0, moveStep), "moved")
	case "r":
		m = m.apply(m.eng.RotateSelection(90), "rotated")

	case "g":
		m = m.apply(m.eng.GroupSelection(), "grouped")
	case "G":
		m = m.apply(m.eng.UngroupSelection(), "ungrouped")
	case "s":
		m = m.apply(m.eng.StackSelection(), "stacked")
	case "S":
		m = m.apply(m.eng.UnstackSelection(), "unstacked")

	case "x":
		m = m.apply(m.eng.DeleteSelection(), "deleted")
		if m.cursor >= len(m.eng.Project().Items) && m.cursor > 0 {
			m.cursor = len(m.eng.Project().Items) - 1
		}

	case "u":
		if m.eng.Undo() {
			m.status = "undo"
		} else {
			m.status = "nothing to undo"
		}
	case "y":
		if m.eng.Redo() {
			m.status = "redo"
		} else {
			m.status = "nothing to redo"
		}
	}

	return m, nil
}

// placeCursorItem places the unplaced item under the cursor on the next
// grid spot.
func (m EditorModel) placeCursorItem(it plan.FurnitureItem) EditorModel {
	if it.Placed() {
		m.errMsg = it.Name + " is already placed"
		return m
	}
	n := len(m.eng.Project().PlacedItems())
	at := plan.Point{
		X: float64(n%5)*placementColumn + 20,
		Y: float64(n/5)*placementColumn + 20,
	}
	return m.apply(m.eng.PlaceItem(it.ID, at), "placed "+it.Name)
}

// apply folds an engine operation result into the status line. Routine
// status conditions show up as messages rather than aborting the editor.
func (m EditorModel) apply(err error, ok string) EditorModel {
	if err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.status = ok
	return m
}

func (m EditorModel) View() string {
	var b strings.Builder
	p := m.eng.Project()

	b.WriteString(StyleTitle.Render("Floorlay · " + p.Name))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓ move  ␣ select  ⏎ place  HJKL nudge  r rotate  g/s group/stack  x delete  u/y undo/redo  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(p.Items) {
		end = len(p.Items)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderItem(&p.Items[i], i == m.cursor))
		b.WriteString("\n")
	}
	if len(p.Items) == 0 {
		b.WriteString(editorDimStyle.Render("  no furniture yet; import a catalog first"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	return b.String()
}

func (m EditorModel) renderItem(it *plan.FurnitureItem, atCursor bool) string {
	cursor := "  "
	if atCursor {
		cursor = "▸ "
	}
	mark := " "
	if m.eng.Selection().Has(it.ID) {
		mark = "●"
	}

	pos := "unplaced"
	if it.Placed() {
		pos = fmt.Sprintf("(%.0f, %.0f) %.0f°", it.Position.X, it.Position.Y, it.Rotation)
	}

	var tags []string
	if it.GroupID != "" {
		tags = append(tags, "grp")
	}
	if it.StackID != "" {
		tags = append(tags, "stk")
	}
	if it.Zone != "" {
		tags = append(tags, it.Zone)
	}

	style := editorNormalStyle
	if atCursor {
		style = editorSelectedStyle
	}

	line := fmt.Sprintf("%s%s %-24s %-20s %s", cursor, mark, it.Name, pos, editorDimStyle.Render(strings.Join(tags, " ")))
	return style.Render(line)
}

func (m EditorModel) renderStatus() string {
	p := m.eng.Project()
	scale := "uncalibrated"
	if p.Calibrated() {
		scale = fmt.Sprintf("%.2f px/cm", p.Scale)
	}

	status := fmt.Sprintf("%s · %d items · %d selected · %d tasks · %s",
		m.eng.Mode(), len(p.Items), len(m.eng.Selection()), len(m.eng.Tasks()), scale)

	line := editorStatusStyle.Render(status)
	if m.errMsg != "" {
		line += "  " + editorErrorStyle.Render(iconError+" "+m.errMsg)
	} else if m.status != "" {
		line += "  " + editorDimStyle.Render(m.status)
	}
	return line
}
