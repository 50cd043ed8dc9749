package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/tracker/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
	tasks    ports.TaskService
}

func NewSessionHandler(sessions ports.SessionService, tasks ports.TaskService) *SessionHandler {
	return &SessionHandler{sessions: sessions, tasks: tasks}
}

// Create handles POST /v1/sessions. The actor becomes the session's creator
// and owner member.
//
// @Summary      Create a study session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSessionRequest  true  "Session"
// @Success      201   {object}  domain.Session
// @Failure      422   {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req createSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.CreateSession(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

// List handles GET /v1/sessions, the sessions created by the actor.
//
// @Summary      List my sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Session
// @Router       /v1/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	sessions, err := h.sessions.ListSessionsByCreator(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  domain.Session
// @Failure      404  {object}  errorResponse
// @Router       /v1/sessions/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	session, err := h.sessions.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// @Summary      Update a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Session ID"
// @Param        body  body      updateSessionRequest  true  "Fields to change"
// @Success      200   {object}  domain.Session
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/sessions/{id} [patch]
func (h *SessionHandler) Update(c echo.Context) error {
	var req updateSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	session, err := h.sessions.UpdateSession(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// @Summary      Delete a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	ok, err := h.sessions.DeleteSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: ok})
}

// @Summary      List session members
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {array}   domain.Membership
// @Failure      404  {object}  errorResponse
// @Router       /v1/sessions/{id}/members [get]
func (h *SessionHandler) Members(c echo.Context) error {
	members, err := h.sessions.ListMembers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// AddMember handles PUT /v1/sessions/:id/members/:user_id. The body is
// optional; an omitted role joins the user as a plain member.
//
// @Summary      Add a session member
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true   "Session ID"
// @Param        user_id  path      string            true   "User ID"
// @Param        body     body      addMemberRequest  false  "Role in session"
// @Success      201      {object}  domain.Membership
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/sessions/{id}/members/{user_id} [put]
func (h *SessionHandler) AddMember(c echo.Context) error {
	var req addMemberRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	m, err := h.sessions.AddMember(c.Request().Context(), c.Param("id"), c.Param("user_id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// @Summary      Remove a session member
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Session ID"
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  deletedResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/sessions/{id}/members/{user_id} [delete]
func (h *SessionHandler) RemoveMember(c echo.Context) error {
	ok, err := h.sessions.RemoveMember(c.Request().Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: ok})
}

// Tasks handles GET /v1/sessions/:id/tasks, limited to the actor's tasks.
//
// @Summary      List my tasks in a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {array}   domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /v1/sessions/{id}/tasks [get]
func (h *SessionHandler) Tasks(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	tasks, err := h.tasks.ListSessionTasks(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
