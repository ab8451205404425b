package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label or button. Class and ID select CSS rules.
// Bounds is written by Engine.Draw and used for click hit tests.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string
	ID     string
	Bounds rl.Rectangle
	Text   string
	// Parent positions this node relative to another node drawn earlier.
	Parent *Node
	// OffsetY shifts the node down from its styled position, for stacked rows.
	OffsetY  int32
	Disabled bool
	OnClick  func()
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// classes includes the node type so ".button" styles every button.
func (n *Node) classes() string {
	if n.Class == "" {
		return n.Type
	}
	return n.Type + " " + n.Class
}
