package service

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionStoreIssueArithmetic(t *testing.T) {
	store := NewQuestionStore(5*time.Minute, time.Hour)
	defer store.Stop()

	for i := 0; i < 200; i++ {
		q := store.Issue()

		parts := strings.Split(q.Expression, " ")
		require.Len(t, parts, 3)

		a, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		b, err := strconv.Atoi(parts[2])
		require.NoError(t, err)

		assert.GreaterOrEqual(t, a, 1)
		assert.LessOrEqual(t, a, 10)
		assert.GreaterOrEqual(t, b, 1)
		assert.LessOrEqual(t, b, 10)

		switch parts[1] {
		case "+":
			assert.Equal(t, a+b, q.Answer)
		case "-":
			assert.Equal(t, a-b, q.Answer)
		case "×":
			assert.Equal(t, a*b, q.Answer)
		default:
			t.Fatalf("unexpected operator %q", parts[1])
		}
	}
}

func TestQuestionStoreConsumeOnce(t *testing.T) {
	store := NewQuestionStore(5*time.Minute, time.Hour)
	defer store.Stop()

	q := store.Issue()

	got, ok := store.Consume(q.ID)
	require.True(t, ok)
	assert.Equal(t, q.Answer, got.Answer)

	_, ok = store.Consume(q.ID)
	assert.False(t, ok, "second consume of the same id must fail")
}

func TestQuestionStoreConsumeUnknownID(t *testing.T) {
	store := NewQuestionStore(5*time.Minute, time.Hour)
	defer store.Stop()

	_, ok := store.Consume("no-such-id")
	assert.False(t, ok)
}

func TestQuestionStoreConsumeExpired(t *testing.T) {
	store := NewQuestionStore(time.Millisecond, time.Hour)
	defer store.Stop()

	q := store.Issue()
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Consume(q.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired entry is removed on consume")
}

func TestQuestionStoreConcurrentConsume(t *testing.T) {
	store := NewQuestionStore(5*time.Minute, time.Hour)
	defer store.Stop()

	q := store.Issue()

	const workers = 32
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, ok := store.Consume(q.ID); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins, "exactly one goroutine may consume a question")
}

func TestQuestionStoreSweepRemovesExpired(t *testing.T) {
	store := NewQuestionStore(time.Millisecond, time.Hour)
	defer store.Stop()

	store.Issue()
	store.Issue()
	time.Sleep(5 * time.Millisecond)

	store.sweep()
	assert.Equal(t, 0, store.Len())
}

func TestQuestionStoreSetTTL(t *testing.T) {
	store := NewQuestionStore(time.Minute, time.Hour)
	defer store.Stop()

	store.SetTTL(10 * time.Minute)
	q := store.Issue()
	assert.Greater(t, time.Until(q.ExpiresAt), 9*time.Minute)

	// 非法值被忽略
	store.SetTTL(0)
	assert.Equal(t, 10*time.Minute, store.currentTTL())
}
