package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	sessionName = "verdix"

	keyJudgeName   = "judge_name"
	keyLeaderboard = "leaderboard_unlocked"
	keyFlash       = "flash"
	keyFlashError  = "flash_error"
)

func cookieKey(value string, size int) ([]byte, bool, error) {
	if value == "" {
		key := make([]byte, size)
		if _, err := rand.Read(key); err != nil {
			return nil, false, errors.Wrap(err, "Failed to generate cookie key")
		}
		return key, true, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, false, errors.Wrap(err, "Failed to decode hex cookie key")
	}
	return key, false, nil
}

func setupSessions(s *server, r *gin.Engine) error {
	authKey, generated, err := cookieKey(s.config.Server.Cookies.AuthenticationKey, 32)
	if err != nil {
		return err
	}
	encryptKey, _, err := cookieKey(s.config.Server.Cookies.EncryptionKey, 32)
	if err != nil {
		return err
	}
	if generated {
		s.logger.Warn("No cookie keys configured, sessions will not survive a restart")
	}

	store := cookie.NewStore(authKey, encryptKey)
	store.Options(sessions.Options{
		Path:     "/",
		Secure:   s.config.Server.Cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	return nil
}

func (s webService) saveSession(session sessions.Session) {
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}
}

func (s webService) flash(c *gin.Context, key, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, key)
	s.saveSession(session)
}

func (s webService) popFlashes(c *gin.Context, key string) []string {
	session := sessions.Default(c)
	raw := session.Flashes(key)
	if len(raw) == 0 {
		return nil
	}
	s.saveSession(session)

	messages := make([]string, 0, len(raw))
	for _, value := range raw {
		if message, ok := value.(string); ok {
			messages = append(messages, message)
		}
	}
	return messages
}

func judgeName(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(keyJudgeName).(string)
	return name
}

func leaderboardUnlocked(c *gin.Context) bool {
	unlocked, _ := sessions.Default(c).Get(keyLeaderboard).(bool)
	return unlocked
}
