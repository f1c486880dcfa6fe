package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndanylov/taskdeck/internal/models"
	"github.com/ndanylov/taskdeck/internal/services"
)

type signupRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=6,max=255"`
	Name     *string `json:"name" binding:"omitnil,min=1,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type userResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func newAuthResponse(user *models.User, token string) authResponse {
	return authResponse{
		User: userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		Token: token,
	}
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abortWithValidation(c, err)
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("signup request")

	result, err := h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError("User already exists"))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(result.User, result.AccessToken))
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abortWithValidation(c, err)
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("login request")

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		// Unknown email and wrong password collapse into
		// the same response on purpose.
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newUnauthorizedError("Invalid credentials"))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(result.User, result.AccessToken))
}
