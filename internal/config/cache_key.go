package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AnswerKeyKey returns the cache key for a mock's answer key.
// module is "reading" or "listening".
func (r *CacheKeyStruct) AnswerKeyKey(module string, mockID int) string {
	return fmt.Sprintf("mock:%s:%d:answer_key", module, mockID)
}

// MockPayloadKey returns the cache key for a mock's question payload.
func (r *CacheKeyStruct) MockPayloadKey(module string, mockID int) string {
	return fmt.Sprintf("mock:%s:%d:payload", module, mockID)
}

var CacheKey = NewCacheKeyStruct()
