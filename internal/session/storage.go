package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage is a session-scoped key/value slot store.
type Storage interface {
	// Get returns the slot contents and whether the slot exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the slot.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the slot. Removing a missing slot is not an error.
	Remove(ctx context.Context, key string) error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

const defaultTTL = 12 * time.Hour

// Options select and configure a backend.
type Options struct {
	Driver    string
	Dir       string
	RedisURL  string
	SessionID string
	TTL       time.Duration
}

// Open builds the Storage described by opts.
func Open(opts Options) (Storage, error) {
	sessionID := strings.TrimSpace(opts.SessionID)
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		return NewMemory(ttl), nil
	case DriverFile:
		return NewFile(opts.Dir, sessionID)
	case DriverRedis:
		return NewRedis(opts.RedisURL, sessionID, ttl)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("slot key is empty")
	}
	return nil
}
