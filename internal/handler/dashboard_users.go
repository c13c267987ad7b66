package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/table"
)

const usersPath = "/dashboard/users"

type usersPage struct {
	Query    string
	TableURL string
}

// userColumns builds the users grid.  Row actions exist only for a
// super-admin viewer; everyone else gets an empty menu.
func userColumns(viewer session.Session) []table.Column[model.User] {
	return []table.Column[model.User]{
		{Key: "id", Header: "Id", Sortable: true,
			Value:     func(u model.User) string { return strconv.FormatUint(u.ID, 10) },
			SortValue: func(u model.User) string { return table.PadNumber(u.ID) }},
		{Key: "email", Header: "Email", Sortable: true, Filterable: true,
			Value: func(u model.User) string { return u.Email }},
		{Key: "fullName", Header: "Full name", Sortable: true, Filterable: true,
			Value: func(u model.User) string { return u.FullName }},
		{Key: "roles", Header: "Roles",
			Value: func(u model.User) string { return u.RolesString() }},
		{Key: "verified", Header: "Verified",
			Value: func(u model.User) string {
				if u.Verified {
					return "Yes"
				}
				return "No"
			}},
		{Key: "createdAt", Header: "Created", Sortable: true,
			Value:     func(u model.User) string { return u.CreatedAt.Format("02.01.2006") },
			SortValue: func(u model.User) string { return u.CreatedAt.UTC().Format("20060102150405") }},
		{Key: "actions", Header: "",
			Actions: func(u model.User) rowactions.Menu {
				if !viewer.IsSuperAdmin() {
					return rowactions.New("user", u.ID, u.Email)
				}
				return rowactions.New("user", u.ID, u.Email,
					rowactions.ToggleAdmin(usersPath, u.ID, u.HasRole(model.RoleAdmin)),
					rowactions.Delete(usersPath, u.ID))
			}},
	}
}

// Users renders the users page; the table loads separately.
func (h *DashboardHandler) Users(c echo.Context) error {
	q := c.QueryParam("q")
	tableURL := usersPath + "/table"
	if q != "" {
		tableURL += "?" + url.Values{"q": {q}}.Encode()
	}
	return render(c, http.StatusOK, "dashboard/users", "Users", usersPage{Query: q, TableURL: tableURL})
}

// UsersTable renders the users table fragment.
func (h *DashboardHandler) UsersTable(c echo.Context) error {
	s := session.From(c)
	users, err := h.API.ListUsers(c.Request().Context(), s.AccessToken)
	if err != nil {
		return h.tableFailed(c, err)
	}
	return c.Render(http.StatusOK, "table", sortedView(c, userColumns(s), users))
}

func (h *DashboardHandler) findUser(c echo.Context, id uint64) (model.User, error) {
	users, err := h.API.ListUsers(c.Request().Context(), session.From(c).AccessToken)
	if err != nil {
		return model.User{}, upstreamError(err, "User not found")
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, echo.NewHTTPError(http.StatusNotFound, "User not found")
}

// ConfirmDeleteUser opens the delete dialog for a user.
func (h *DashboardHandler) ConfirmDeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u, err := h.findUser(c, id)
	if err != nil {
		return err
	}
	return confirmDelete(c, usersPath, "user", u.Email, id)
}

// DeleteUser removes a user with a single API call.
func (h *DashboardHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	status, err := h.API.DeleteUser(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil || !apiclient.IsSuccess(status) {
		return fail(c, h.Log, usersPath, err, status)
	}
	publish(c, h.Audit, queue.NewAuditEvent(queue.ActionDelete, "user", id), status)
	return succeed(c, usersPath, "User deleted")
}

// ToggleAdmin grants ADMIN to a user who lacks it and revokes it
// otherwise.  Other roles are kept.
func (h *DashboardHandler) ToggleAdmin(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u, err := h.findUser(c, id)
	if err != nil {
		return err
	}
	roles, granted := toggleRole(u.Roles, model.RoleAdmin)

	status, err := h.API.SetUserRoles(c.Request().Context(), id, roles, session.From(c).AccessToken)
	if err != nil || !apiclient.IsSuccess(status) {
		return fail(c, h.Log, usersPath, err, status)
	}
	ev := queue.NewAuditEvent(queue.ActionRoleChange, "user", id)
	msg := "Admin role revoked"
	ev.Detail = "revoke " + string(model.RoleAdmin)
	if granted {
		msg = "Admin role granted"
		ev.Detail = "grant " + string(model.RoleAdmin)
	}
	publish(c, h.Audit, ev, status)
	return succeed(c, usersPath, msg)
}

// toggleRole removes r from roles when present and appends it otherwise.
// granted reports which happened.
func toggleRole(roles []model.Role, r model.Role) (out []model.Role, granted bool) {
	out = make([]model.Role, 0, len(roles)+1)
	for _, v := range roles {
		if v != r {
			out = append(out, v)
		}
	}
	if len(out) == len(roles) {
		return append(out, r), true
	}
	return out, false
}
