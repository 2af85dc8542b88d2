package handler

import "github.com/sbworks/marketplace/internal/core/ports"

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Usertype string `json:"usertype" validate:"required,oneof=freelancer client admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the flat identity returned by register and login. The
// password hash is never part of it.
type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Usertype string `json:"usertype"`
	Token    string `json:"token"`
}

type loginFailure struct {
	Msg string `json:"msg"`
}

type meResponse struct {
	UserID   string `json:"userId"`
	Usertype string `json:"usertype"`
	Username string `json:"username"`
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		ID:       r.User.ID,
		Username: r.User.Username,
		Email:    r.User.Email,
		Usertype: string(r.User.Usertype),
		Token:    r.Token,
	}
}
