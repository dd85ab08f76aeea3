package handlers

import (
	"net/http"

	"firstresponse/middleware"
	"firstresponse/models"
	"firstresponse/services/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login and OTP pages.
type AuthHandler struct {
	Controller *auth.Controller
}

func NewAuthHandler(ctrl *auth.Controller) *AuthHandler {
	return &AuthHandler{Controller: ctrl}
}

// RedirectToLogin sends the root path to the login page.
func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// LoginPageHandler renders the login page state.
func (h *AuthHandler) LoginPageHandler(c *gin.Context) {
	state, err := middleware.SessionFrom(c).State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login", "state": state})
}

// OTPPageHandler renders the code entry page. Without a pending login there
// is nothing to verify, so the client goes back to login.
func (h *AuthHandler) OTPPageHandler(c *gin.Context) {
	state, err := middleware.SessionFrom(c).State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if state != models.StateAwaitingOTP {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "otp", "state": state, "cells": auth.OTPLength})
}

// LoginHandler submits credentials and moves the client to the OTP step.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var creds models.LoginCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	out, err := h.Controller.Login(c.Request.Context(), middleware.SessionFrom(c), creds)
	if err != nil {
		respondError(c, err)
		return
	}
	out.Next = "/otp"
	c.JSON(http.StatusOK, out)
}

type otpForm struct {
	OTP    string   `json:"otp"`
	Digits []string `json:"digits"`
}

// VerifyOTPHandler accepts the code either whole or as the six input cells.
func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	var form otpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	code := form.OTP
	if form.Digits != nil {
		code = auth.InputFromCells(form.Digits).Code()
	}

	out, err := h.Controller.VerifyOTP(c.Request.Context(), middleware.SessionFrom(c), code)
	if err != nil {
		respondError(c, err)
		return
	}
	out.Next = "/dashboard"
	c.JSON(http.StatusOK, out)
}

// SessionHandler reports where the client is in the login flow.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	s, err := middleware.SessionFrom(c).Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":    s.State(),
		"username": s.Username,
		"language": s.Language,
	})
}

// SignOutHandler clears the auth token and username and points back to login.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	if err := h.Controller.SignOut(c.Request.Context(), middleware.SessionFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out", "next": middleware.LoginPath})
}
