package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/matchplay-api/internal/config"
	"github.com/yourusername/matchplay-api/pkg/auth"
)

// AdminHandler обрабатывает вход администратора
type AdminHandler struct {
	jwtService *auth.JWTService
	adminCfg   config.AdminConfig
}

// NewAdminHandler создает новый обработчик администратора
func NewAdminHandler(jwtService *auth.JWTService, adminCfg config.AdminConfig) *AdminHandler {
	return &AdminHandler{
		jwtService: jwtService,
		adminCfg:   adminCfg,
	}
}

// LoginRequest представляет запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login сверяет учетные данные и выдаёт токен администратора
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.adminCfg.Username || !auth.CheckPassword(req.Password, h.adminCfg.PasswordHash) {
		log.Printf("[AdminHandler] Неудачная попытка входа администратора: %s", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка генерации токена: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
