// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
package selfenc

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/zhengshuai-xiao/SelfEncS/internal"
)

const redisChunkPrefix = "selfenc:chunk:"

// RedisStorage keeps sealed chunks as Redis string values. Useful as a
// shared low-latency backend for small deployments; chunks are capped at
// MaxChunkSize plus sealing overhead, well within Redis value limits.
type RedisStorage struct {
	rdb redis.UniversalClient
}

// NewRedisStorage connects to a single node, cluster, or sentinel setup.
// addr is "host:port[/db]"; the password is taken from the URL or the
// REDIS_PASSWORD environment variable.
func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	uri := "redis://" + addr
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address format: %w", err)
	}

	opt, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("could not parse redis URL: %w", err)
	}
	if opt.Password == "" {
		opt.Password = os.Getenv("REDIS_PASSWORD")
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        strings.Split(u.Host, ","),
		DB:           opt.DB,
		Password:     opt.Password,
		MaxRetries:   3,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", internal.RemovePassword(uri), err)
	}
	logger.Infof("connected to redis at %s", internal.RemovePassword(uri))
	return &RedisStorage{rdb: rdb}, nil
}

func (s *RedisStorage) Put(ctx context.Context, name string, data []byte) error {
	if err := s.rdb.Set(ctx, redisChunkPrefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to put chunk %s: %w", name, err)
	}
	return nil
}

func (s *RedisStorage) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, redisChunkPrefix+name).Bytes()
	if err == redis.Nil {
		return nil, ErrChunkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chunk %s: %w", name, err)
	}
	return data, nil
}

func (s *RedisStorage) Delete(ctx context.Context, name string) error {
	if err := s.rdb.Del(ctx, redisChunkPrefix+name).Err(); err != nil {
		return fmt.Errorf("failed to delete chunk %s: %w", name, err)
	}
	return nil
}

// Close releases the client connection pool.
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
