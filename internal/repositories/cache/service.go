// Package cache keeps short-lived snapshots of account reads in redis.
// Transfers never read from it; it only serves account listings and lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fundsledger/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	listKey       = "account:list"
	generationKey = "account:generation"
)

// fillScript writes a snapshot only if the generation it was read under is
// still current.
var fillScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current ~= tonumber(ARGV[1]) then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// AccountCache stores account snapshots as JSON.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{
		client: client,
		ttl:    ttl,
	}
}

func (s *AccountCache) set(ctx context.Context, generation int64, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	keys := []string{generationKey, key}
	if err := fillScript.Run(ctx, s.client, keys, generation, data, s.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}
	return nil
}

// Generation returns the current snapshot generation. Read it before
// loading from storage and pass it to SetAccount or SetAccounts.
func (s *AccountCache) Generation(ctx context.Context) (int64, error) {
	generation, err := s.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return generation, nil
}

func (s *AccountCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func accountKey(id uint) string {
	return fmt.Sprintf("account:id:%d", id)
}

func (s *AccountCache) GetAccount(ctx context.Context, id uint) (*models.Account, bool, error) {
	var account models.Account
	found, err := s.get(ctx, accountKey(id), &account)
	if err != nil || !found {
		return nil, false, err
	}
	return &account, true, nil
}

// SetAccount stores a snapshot read under generation. It is a no-op when
// an invalidation happened since.
func (s *AccountCache) SetAccount(ctx context.Context, generation int64, account *models.Account) error {
	if account == nil {
		return errors.New("cannot cache nil account")
	}
	return s.set(ctx, generation, accountKey(account.ID), account)
}

func (s *AccountCache) GetAccounts(ctx context.Context) ([]models.Account, bool, error) {
	var accounts []models.Account
	found, err := s.get(ctx, listKey, &accounts)
	if err != nil || !found {
		return nil, false, err
	}
	return accounts, true, nil
}

func (s *AccountCache) SetAccounts(ctx context.Context, generation int64, accounts []models.Account) error {
	return s.set(ctx, generation, listKey, accounts)
}

// Invalidate drops the listing and the snapshots of the given accounts and
// starts a new generation, which rejects fills still in flight.
func (s *AccountCache) Invalidate(ctx context.Context, ids ...uint) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, accountKey(id))
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}
