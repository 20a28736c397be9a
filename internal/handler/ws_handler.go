/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

HandleWebSocket authenticates the session token passed as a query parameter, upgrades the
connection and hands the client to the live hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"classroom/internal/app/live"
	"classroom/internal/pkg/auth/jwt"
	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades authenticated requests to live connections.
// Browsers cannot set headers on WebSocket requests, so the token travels as ?token=.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			logx.Warn("WebSocket request rejected: missing token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		identity, err := jwt.ParseToken(token, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket request rejected: invalid token", "error", err.Error())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if !identity.IsTeacher() && !deps.Classroom.Knows(identity.Name) {
			logx.Info("WebSocket request rejected: participant not on roster", "name", identity.Name)
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := live.NewClient(deps.Hub, conn, live.Sender{
			Name: identity.Name,
			Role: string(identity.Role),
		})

		go client.WritePump()

		if !deps.Hub.Register(client) {
			return
		}

		logx.Info("WebSocket connection established", "name", identity.Name, "role", string(identity.Role))

		client.ReadPump()
	}
}
