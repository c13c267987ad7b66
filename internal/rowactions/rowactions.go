// Package rowactions builds the per-row action menu shown in dashboard
// tables.  One Menu type serves every entity; callers decide which
// actions a row offers.
package rowactions

import (
	"fmt"
	"net/http"
)

// Kind identifies an action.
type Kind string

const (
	KindEdit        Kind = "edit"
	KindDelete      Kind = "delete"
	KindToggleAdmin Kind = "toggle-admin"
)

// Action is one menu entry.  GET actions load a dialog into the page;
// POST actions submit immediately.  Confirm marks destructive entries
// that open a confirmation dialog first.
type Action struct {
	Kind    Kind
	Label   string
	Href    string
	Method  string
	Confirm bool
}

// Menu is the action menu of a single row.
type Menu struct {
	Entity  string
	ID      uint64
	Label   string
	Actions []Action
}

// Empty reports whether the menu has nothing to offer; templates hide
// the trigger button in that case.
func (m Menu) Empty() bool { return len(m.Actions) == 0 }

// DOMID is the element id of the menu, unique per row.
func (m Menu) DOMID() string { return fmt.Sprintf("%s-%d-actions", m.Entity, m.ID) }

// Edit opens the edit dialog of the row at base/:id/edit.
func Edit(base string, id uint64) Action {
	return Action{Kind: KindEdit, Label: "Edit", Href: fmt.Sprintf("%s/%d/edit", base, id), Method: http.MethodGet}
}

// Delete opens the delete confirmation dialog at base/:id/delete.
func Delete(base string, id uint64) Action {
	return Action{Kind: KindDelete, Label: "Delete", Href: fmt.Sprintf("%s/%d/delete", base, id), Method: http.MethodGet, Confirm: true}
}

// ToggleAdmin grants or revokes ADMIN.  The label follows the current state.
func ToggleAdmin(base string, id uint64, isAdmin bool) Action {
	label := "Make admin"
	if isAdmin {
		label = "Revoke admin"
	}
	return Action{Kind: KindToggleAdmin, Label: label, Href: fmt.Sprintf("%s/%d/admin", base, id), Method: http.MethodPost}
}

// New builds a menu for one row.
func New(entity string, id uint64, label string, actions ...Action) Menu {
	return Menu{Entity: entity, ID: id, Label: label, Actions: actions}
}

// Confirm describes the delete confirmation dialog.  Submitting it posts
// once to Action.
type Confirm struct {
	Title   string
	Message string
	Action  string
	Cancel  string
}

// DeleteConfirm builds the confirmation dialog for deleting entity id.
func DeleteConfirm(base, entity, label string, id uint64) Confirm {
	return Confirm{
		Title:   fmt.Sprintf("Delete %s", entity),
		Message: fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", label),
		Action:  fmt.Sprintf("%s/%d/delete", base, id),
		Cancel:  base,
	}
}
