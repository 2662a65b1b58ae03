package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nordbooks/leadtrack/utils"
)

type loginRequest struct {
	Password string `json:"password"`
}

// AdminLogin exchanges the admin dashboard password for a bearer token.
func AdminLogin(passwordHash, jwtSecret string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if passwordHash == "" {
			utils.WriteErrorResponse(w, http.StatusServiceUnavailable, errors.New("admin login is not configured"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			logger.Warn("admin login rejected", zap.String("ip", utils.GetIPAddress(r)))
			utils.WriteErrorResponse(w, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}

		token, err := utils.CreateAdminToken(jwtSecret)
		if err != nil {
			logger.Error("creating admin token failed", zap.Error(err))
			utils.WriteErrorResponse(w, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"token": token})
	}
}
