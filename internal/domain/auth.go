package domain

import "github.com/golang-jwt/jwt/v5"

// OwnerSubject é o sujeito dos tokens emitidos para o dono da conta
const OwnerSubject = "owner"

type Claims struct {
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
