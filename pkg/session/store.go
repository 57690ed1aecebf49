package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/krono-coffee/ordering-client/pkg/global"
)

// ErrNoToken is returned by Read when the credential slot is empty.
var ErrNoToken = errors.New("no stored token")

// TokenStore persists the bearer credential across runs. It is a single
// named slot: saving overwrites, clearing empties. The token shape is
// not validated here.
type TokenStore interface {
	Save(token string) error
	Read() (string, error)
	Clear() error
}

// FileStore keeps the credential in a single file, the durable key-value
// slot of a single-user installation.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// RedisStore keeps the credential in Redis, for shared-terminal setups
// where several kiosk processes act as one signed-in station.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(key string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     global.GetRedisAddress(),
			Password: global.GetRedisPassword(),
			DB:       0,
			Protocol: 2,
		}),
		key: key,
	}
}

func (s *RedisStore) Save(token string) error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	// No TTL: the slot survives until an explicit logout or purge.
	return s.client.Set(ctx, s.key, token, 0).Err()
}

func (s *RedisStore) Read() (string, error) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	return s.client.Del(ctx, s.key).Err()
}
