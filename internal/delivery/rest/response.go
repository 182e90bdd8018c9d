package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/service"
)

const (
	msgInvalidJSON  = "Invalid JSON body"
	msgInternal     = "Қате пайда болды / Произошла ошибка"
	msgRateLimited  = "Too many requests. Try again later."
	msgNoSession    = "No session provided"
	msgLoggedOut    = "Logged out successfully"
	msgProfileSaved = "Профиль жаңартылды / Профиль обновлен"
	msgContactSent  = "Хабарлама сәтті жіберілді!"
)

// success writes {"success": true} merged with payload.
func success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

type errorMapping struct {
	status  int
	message string
}

var serviceErrors = []struct {
	err error
	errorMapping
}{
	{service.ErrMissingFields, errorMapping{http.StatusBadRequest, "Барлық өрістерді толтырыңыз / Заполните все поля"}},
	{service.ErrNameTooShort, errorMapping{http.StatusBadRequest, "Аты кем дегенде 2 таңбадан тұруы керек"}},
	{service.ErrPasswordTooShort, errorMapping{http.StatusBadRequest, "Құпия сөз кем дегенде 6 таңбадан тұруы керек"}},
	{service.ErrInvalidEmail, errorMapping{http.StatusBadRequest, "Жарамсыз email форматы"}},
	{service.ErrEmailTaken, errorMapping{http.StatusBadRequest, "Бұл email тіркелген / Email уже зарегистрирован"}},
	{service.ErrTopicRequired, errorMapping{http.StatusBadRequest, "Тақырып міндетті / Topic required"}},
	{service.ErrTopicTooLong, errorMapping{http.StatusBadRequest, "Topic too long"}},
	{service.ErrInvalidLevel, errorMapping{http.StatusBadRequest, "Invalid level"}},
	{service.ErrTextTooLong, errorMapping{http.StatusBadRequest, "Text too long"}},
	{service.ErrClanExists, errorMapping{http.StatusBadRequest, "Клан с таким именем уже существует"}},
	{service.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, "Неверный email или пароль."}},
	{service.ErrSessionInvalid, errorMapping{http.StatusUnauthorized, "Session expired or invalid"}},
	{service.ErrUserNotFound, errorMapping{http.StatusNotFound, "Пайдаланушы табылмады / Пользователь не найден"}},
	{service.ErrClanNotFound, errorMapping{http.StatusNotFound, "Клан не найден"}},
	{service.ErrNotInClan, errorMapping{http.StatusNotFound, "Клан не найден"}},
	{service.ErrAIUnavailable, errorMapping{http.StatusServiceUnavailable, "AI service temporarily unavailable"}},
}

// mapError translates a service error into a status and a client message.
// Unknown errors become a generic 500.
func mapError(err error) (int, string) {
	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status, message := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	fail(c, status, message)
}
