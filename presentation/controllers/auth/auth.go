package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/application/usecases/auth"
	"github.com/hilthontt/roomly/presentation/controllers/common"
)

type AuthController interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type authController struct {
	usecase auth.AuthUseCase
}

func NewAuthController(usecase auth.AuthUseCase) AuthController {
	return &authController{usecase: usecase}
}

func (c *authController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	result, err := c.usecase.Register(ctx.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, AuthResponse{
		Message: "user registered successfully",
		User:    ToUserResponse(result.User),
		Token:   result.Token,
	})
}

func (c *authController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	result, err := c.usecase.Login(ctx.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		Message: "login successful",
		User:    ToUserResponse(result.User),
		Token:   result.Token,
	})
}

func (c *authController) Me(ctx *gin.Context) {
	user, err := c.usecase.Me(ctx.Request.Context(), common.UserID(ctx))
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToUserResponse(user))
}
