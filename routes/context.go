package routes

import "github.com/kataras/iris/v12"

// Helpers for the values stashed by utils.UserIDFromTokenMiddleware.

func contextUserID(ctx iris.Context) uint {
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func contextInstitutionID(ctx iris.Context) uint {
	if v := ctx.Values().Get("institutionID"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func contextRole(ctx iris.Context) string {
	if v := ctx.Values().Get("role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return "user"
}
