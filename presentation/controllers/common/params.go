package common

import "github.com/gin-gonic/gin"

// IDParam is the :id segment shared by room and booking routes.
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// BindURI binds and validates path parameters into obj. On failure the
// validation response is already written.
func BindURI(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindUri(obj); err != nil {
		WriteBindError(ctx, err)
		return false
	}
	return true
}

// BindID returns the validated :id path parameter.
func BindID(ctx *gin.Context) (string, bool) {
	var p IDParam
	if !BindURI(ctx, &p) {
		return "", false
	}
	return p.ID, true
}
