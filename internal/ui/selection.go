package ui

import (
	"museum-gallery/internal/panel"
)

const (
	lineStep        = 28
	descriptionStep = 22
	descriptionMax  = 4
	descriptionWrap = 52
)

// SelectionPanel shows the selected artwork at the right edge of the screen with the
// favorite and close buttons. It owns its nodes and refreshes their text from a panel.View.
type SelectionPanel struct {
	box      *Node
	title    *Node
	lines    []*Node
	desc     []*Node
	errLine  *Node
	favorite *Node
	close    *Node
	nodes    []*Node
}

// NewSelectionPanel creates the panel. onFavorite and onClose run on the render goroutine
// when the buttons are clicked.
func NewSelectionPanel(onFavorite, onClose func()) *SelectionPanel {
	p := &SelectionPanel{
		box:      NewNode("panel", "selection", "", ""),
		title:    NewNode("label", "selection-title", "", ""),
		errLine:  NewNode("label", "selection-error", "", ""),
		favorite: NewNode("button", "favorite", "", ""),
		close:    NewNode("button", "close", "", ""),
	}
	for _, n := range []*Node{p.title, p.errLine, p.favorite, p.close} {
		n.Parent = p.box
	}
	p.favorite.OnClick = onFavorite
	p.close.OnClick = onClose
	return p
}

// AppendNodes appends the panel's nodes to dst when v is visible, after updating their text.
func (p *SelectionPanel) AppendNodes(dst []*Node, v panel.View) []*Node {
	if !v.Visible {
		return dst
	}
	p.title.Text = panel.Truncate(v.Title, 34)
	p.lines = resize(p.lines, len(v.Lines), "selection-line", p.box)
	for i, line := range v.Lines {
		p.lines[i].Text = panel.Truncate(line, 44)
		p.lines[i].OffsetY = int32(i * lineStep)
	}
	wrapped := panel.Wrap(v.Description, descriptionWrap, descriptionMax)
	p.desc = resize(p.desc, len(wrapped), "selection-description", p.box)
	base := int32(len(v.Lines)*lineStep + 8)
	for i, line := range wrapped {
		p.desc[i].Text = line
		p.desc[i].OffsetY = base + int32(i*descriptionStep)
	}
	p.errLine.Text = panel.Truncate(v.Error, 48)
	p.favorite.Text = v.Favorite.Label
	p.favorite.Disabled = !v.Favorite.Enabled
	p.close.Text = v.Close

	p.nodes = append(p.nodes[:0], p.box, p.title)
	p.nodes = append(p.nodes, p.lines...)
	p.nodes = append(p.nodes, p.desc...)
	if p.errLine.Text != "" {
		p.nodes = append(p.nodes, p.errLine)
	}
	p.nodes = append(p.nodes, p.favorite, p.close)
	return append(dst, p.nodes...)
}

// resize grows or shrinks a row pool, keeping existing nodes so styles stay cached.
func resize(rows []*Node, n int, class string, parent *Node) []*Node {
	for len(rows) < n {
		row := NewNode("label", class, "", "")
		row.Parent = parent
		rows = append(rows, row)
	}
	return rows[:n]
}
