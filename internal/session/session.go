package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CookieName is the cookie that carries the signed session token.
const CookieName = "joblane_session"

// TTL bounds both the redis record and the token expiry.
const TTL = 72 * time.Hour

const flashTTL = 5 * time.Minute

var ErrNoSession = errors.New("no active session")

// Manager holds authenticated sessions in redis, keyed by the session ID
// embedded in the cookie token. Deleting the redis record is what logs a
// user out; the token alone proves nothing once the record is gone.
type Manager struct {
	rdb    *redis.Client
	secret string
}

func NewManager(rdb *redis.Client, secret string) *Manager {
	return &Manager{rdb: rdb, secret: secret}
}

func NewRedisClient(address, username, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}

func sessionKey(sid string) string { return "session:" + sid }
func flashKey(sid string) string   { return "flash:" + sid }

// Create opens a session for userID and returns the cookie token and the
// session ID.
func (m *Manager) Create(ctx context.Context, userID int) (string, string, error) {
	sid := uuid.NewString()

	if err := m.rdb.Set(ctx, sessionKey(sid), userID, TTL).Err(); err != nil {
		log.Error().Err(err).Msg("failed to store session")
		return "", "", err
	}

	token, err := signToken(userID, sid, m.secret)
	if err != nil {
		return "", "", err
	}
	return token, sid, nil
}

// Resolve verifies a cookie token and checks the session is still live.
// Returns the user ID and the session ID.
func (m *Manager) Resolve(ctx context.Context, token string) (int, string, error) {
	userID, sid, err := parseToken(token, m.secret)
	if err != nil {
		return 0, "", err
	}

	stored, err := m.rdb.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, "", ErrNoSession
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up session")
		return 0, "", err
	}

	// the record must name the same user the token claims
	if storedID, err := strconv.Atoi(stored); err != nil || storedID != userID {
		return 0, "", ErrNoSession
	}

	return userID, sid, nil
}

// Destroy logs the session out and drops any pending flash.
func (m *Manager) Destroy(ctx context.Context, sid string) error {
	if err := m.rdb.Del(ctx, sessionKey(sid), flashKey(sid)).Err(); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")
		return err
	}
	return nil
}

// SetFlash stores a one-time confirmation message for the session.
func (m *Manager) SetFlash(ctx context.Context, sid, message string) {
	if err := m.rdb.Set(ctx, flashKey(sid), message, flashTTL).Err(); err != nil {
		log.Error().Err(err).Msg("failed to set flash message")
	}
}

// PopFlash returns the pending flash message, removing it so it shows once.
func (m *Manager) PopFlash(ctx context.Context, sid string) string {
	msg, err := m.rdb.GetDel(ctx, flashKey(sid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Msg("failed to pop flash message")
		}
		return ""
	}
	return msg
}
