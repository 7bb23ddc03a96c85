package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const knowledgeKeyPrefix = "knowledge:"

type redisKnowledge struct {
	client *redis.Client
}

// NewRedisKnowledgeRepository - knowledge store backed by redis, one string
// key per board state.
func NewRedisKnowledgeRepository(client *redis.Client) KnowledgeRepository {
	return &redisKnowledge{
		client: client,
	}
}

func (that *redisKnowledge) Lookup(ctx context.Context, boardKey string) (int, error) {
	response, err := that.client.Get(ctx, knowledgeKeyPrefix+boardKey).Result()

	if errors.Is(err, redis.Nil) {
		return 0, ErrMoveNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get stored move: %w", err)
	}

	cell, err := strconv.Atoi(response)
	if err != nil {
		return 0, fmt.Errorf("stored move is not a number: %w", err)
	}

	return cell, nil
}

func (that *redisKnowledge) Teach(ctx context.Context, boardKey string, cell int) error {
	err := that.client.Set(ctx, knowledgeKeyPrefix+boardKey, strconv.Itoa(cell), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set stored move: %w", err)
	}

	return nil
}

func (that *redisKnowledge) All(ctx context.Context) (map[string]int, error) {
	moves := make(map[string]int)

	iter := that.client.Scan(ctx, 0, knowledgeKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()

		response, err := that.client.Get(ctx, fullKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get stored move: %w", err)
		}

		cell, err := strconv.Atoi(response)
		if err != nil {
			return nil, fmt.Errorf("stored move is not a number: %w", err)
		}

		moves[fullKey[len(knowledgeKeyPrefix):]] = cell
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan stored moves: %w", err)
	}

	return moves, nil
}
