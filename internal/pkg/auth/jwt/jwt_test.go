package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{Name: "Alice Anderson", Role: RoleStudent}, secret, time.Minute)
	require.NoError(t, err)

	payload, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "Alice Anderson", payload.Name)
	assert.Equal(t, RoleStudent, payload.Role)
	assert.Equal(t, TokenIssuer, payload.Issuer)
	assert.False(t, payload.IsTeacher())
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(&Payload{Name: "Teacher Name", Role: RoleTeacher}, secret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(valid, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateToken(&Payload{Name: "Teacher Name", Role: RoleTeacher}, secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.Error(t, err)

	noRole, err := GenerateToken(&Payload{Name: "Mallory"}, secret, time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(noRole, secret)
	assert.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	teacherToken, err := GenerateToken(&Payload{Name: "Teacher Name", Role: RoleTeacher}, secret, time.Minute)
	require.NoError(t, err)
	studentToken, err := GenerateToken(&Payload{Name: "Bob Brown", Role: RoleStudent}, secret, time.Minute)
	require.NoError(t, err)

	h := IdentityExtractorMiddleware(secret)(RequireRole(RoleTeacher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, GetPayloadFromContext(r).IsTeacher())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", want: http.StatusUnauthorized},
		{name: "student", header: "Bearer " + studentToken, want: http.StatusForbidden},
		{name: "teacher", header: "Bearer " + teacherToken, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/roster/move", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
