package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// Self lets a student or teacher reach routes whose :id is their own record.
const Self = "SELF"

// RBAC enforces role-based access control for routes.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowSelf := false
	allowedRoles := make(map[models.UserRole]struct{})
	for _, a := range allowed {
		if a == Self {
			allowSelf = true
			continue
		}
		allowedRoles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}

		if _, ok := allowedRoles[session.User.Role]; ok {
			c.Next()
			return
		}

		if allowSelf && ownsTarget(session.User, c.Param("id")) {
			c.Next()
			return
		}

		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "Acesso não autorizado para este perfil"))
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

func ownsTarget(user models.User, targetID string) bool {
	if targetID == "" {
		return false
	}
	switch user.Role {
	case models.RoleStudent:
		return user.StudentID != "" && user.StudentID == targetID
	case models.RoleTeacher:
		return user.TeacherID != "" && user.TeacherID == targetID
	}
	return false
}
