package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/domain"
	"taskdeck/internal/service"
	mdw "taskdeck/internal/transport/http/middleware"
	"taskdeck/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerReq
	if !bindJSON(c, &in) {
		return
	}
	token, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"token":   token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginReq
	if !bindJSON(c, &in) {
		return
	}
	token, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "user logged in successfully",
		"token":   token,
	})
}

type resetReq struct {
	NewName         string `json:"newName"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	NewEmail        string `json:"newEmail"`
}

func (h *AuthHandler) Reset(c *gin.Context) {
	ident, ok := mdw.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in resetReq
	if !bindJSON(c, &in) {
		return
	}
	err := h.svc.Reset(c.Request.Context(), ident, service.ResetInput{
		NewName:         in.NewName,
		NewEmail:        in.NewEmail,
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User details updated successfully")
}
