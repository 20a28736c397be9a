package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"classroom/internal/app/roster"
	"classroom/internal/pkg/auth/jwt"
	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/req"
	"classroom/internal/pkg/resp"
)

type JoinInput struct {
	Name     string `json:"name" validate:"required_if=Role student,max=80"`
	Role     string `json:"role" validate:"required,oneof=teacher student"`
	Passcode string `json:"passcode,omitempty" validate:"max=128"`
}

type SessionOutput struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Initials  string    `json:"initials"`
	Role      jwt.Role  `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleJoin issues a session token. The teacher proves identity with the passcode;
// students join under their full name and are admitted to the pool if new.
func HandleJoin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input JoinInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		teacher := deps.Classroom.Teacher()
		role := jwt.Role(input.Role)
		name := strings.Join(strings.Fields(input.Name), " ")

		switch role {
		case jwt.RoleTeacher:
			if subtle.ConstantTimeCompare([]byte(input.Passcode), []byte(deps.Config.TeacherPasscode)) != 1 {
				logx.Warn("Teacher join rejected: wrong passcode.")
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPasscode))
				return
			}
			name = teacher.FullName

		case jwt.RoleStudent:
			if name == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			if strings.EqualFold(name, teacher.FullName) {
				resp.RespondError(w, r, errs.NewError(errs.ErrParticipantNameTaken))
				return
			}
			if deps.Classroom.Admit(name) {
				logx.Info("Student admitted to the pool.", "name", name)
			}
		}

		expiresAt := time.Now().Add(jwt.SessionExpiration)
		token, err := jwt.GenerateToken(&jwt.Payload{Name: name, Role: role}, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "Failed to sign session token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, SessionOutput{
			Token:     token,
			Name:      name,
			Initials:  roster.DeriveInitials(name),
			Role:      role,
			ExpiresAt: expiresAt,
		})
	}
}

// HandleSessionMe returns the identity behind the caller's token and where they sit.
func HandleSessionMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		entry, found := lo.Find(deps.Classroom.Directory(), func(e roster.Entry) bool {
			return e.FullName == identity.Name
		})

		data := map[string]any{
			"name":  identity.Name,
			"role":  identity.Role,
			"entry": nil,
		}
		if found {
			data["entry"] = entry
		}

		resp.RespondSuccess(w, r, data)
	}
}
