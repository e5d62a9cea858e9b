// Package list is a generic scrollable list. It handles navigation and
// mouse input; rendering is left to the owner through VisibleRange.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/cursor"
)

// Action is what an Update did.
type Action int

const (
	ActionNone  Action = iota
	ActionMoved        // cursor moved or view scrolled
	ActionEnter        // enter on the selected row
)

// Result tells the owner what happened.
type Result struct {
	Action Action
	Index  int // selected index, -1 when the list is empty
}

// Model is a list of T whose height is the number of visible rows.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates an empty list.
func New[T any]() Model[T] {
	return Model[T]{cursor: cursor.New(ui.ScrollMargin)}
}

// SetItems replaces the items and keeps the cursor in bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items), m.Height())
}

// Items returns the items.
func (m *Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m *Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position, -1 when empty.
func (m *Model[T]) SelectedIndex() int {
	if len(m.items) == 0 {
		return -1
	}
	return m.cursor.Pos()
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.Height())
}

// VisibleRange returns the rows to render, [start, end).
func (m *Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.Height())
}

// Update handles navigation keys, enter and the mouse. Mouse rows are
// relative to the first list row.
func (m *Model[T]) Update(msg tea.Msg) Result {
	n, h := len(m.items), m.Height()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.cursor.HandleKey(msg.String(), n, h) {
			return Result{Action: ActionMoved, Index: m.SelectedIndex()}
		}
		if msg.Type == tea.KeyEnter && n > 0 {
			return Result{Action: ActionEnter, Index: m.cursor.Pos()}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.cursor.Move(-1, n, h)
			return Result{Action: ActionMoved, Index: m.SelectedIndex()}
		case tea.MouseButtonWheelDown:
			m.cursor.Move(1, n, h)
			return Result{Action: ActionMoved, Index: m.SelectedIndex()}
		case tea.MouseButtonLeft:
			start, end := m.VisibleRange()
			row := start + msg.Y
			if msg.Action != tea.MouseActionPress || msg.Y < 0 || row >= end {
				break
			}
			if row == m.cursor.Pos() {
				return Result{Action: ActionEnter, Index: row}
			}
			m.cursor.Jump(row, n, h)
			return Result{Action: ActionMoved, Index: row}
		}
	}

	return Result{Action: ActionNone, Index: m.SelectedIndex()}
}
