package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portal/database"
	"portal/metrics"
	"portal/models"
)

const questionCacheKey = "quiz:questions"
const questionCacheTTL = 5 * time.Minute

// GetQuestionBank returns the full question bank in stable position order.
// The bank is cached in redis when a client is available; admin edits must
// call InvalidateQuestionCache.
func GetQuestionBank(ctx context.Context) ([]models.Question, error) {
	if database.RDB != nil {
		if cached, err := database.RDB.Get(ctx, questionCacheKey).Bytes(); err == nil {
			var questions []models.Question
			if err := json.Unmarshal(cached, &questions); err == nil {
				metrics.CacheHits.Inc()
				return questions, nil
			}
		}
		metrics.CacheMisses.Inc()
	}

	var questions []models.Question
	start := time.Now()
	if err := database.DB.Order("position ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch question bank: %w", err)
	}
	metrics.RecordDBOperation("select", "questions", start)

	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	if database.RDB != nil {
		if data, err := json.Marshal(questions); err == nil {
			database.RDB.Set(ctx, questionCacheKey, data, questionCacheTTL)
		}
	}
	return questions, nil
}

// InvalidateQuestionCache drops the cached bank after an admin edit
func InvalidateQuestionCache(ctx context.Context) {
	if database.RDB != nil {
		database.RDB.Del(ctx, questionCacheKey)
	}
}
