package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MathQuestion 短时效题目，只存在内存中，答案在判题前绝不下发客户端
type MathQuestion struct {
	ID         string
	Expression string
	Answer     int
	ExpiresAt  time.Time
}

func (q MathQuestion) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// QuestionStore 以不透明ID为键保存未作答的题目。
// Consume是检查并删除的原子操作：同一ID并发消费恰好成功一次。
type QuestionStore struct {
	mu        sync.Mutex
	questions map[string]MathQuestion
	ttl       time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

func NewQuestionStore(ttl, sweepInterval time.Duration) *QuestionStore {
	s := &QuestionStore{
		questions: make(map[string]MathQuestion),
		ttl:       ttl,
		stop:      make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()

	return s
}

var operators = []string{"+", "-", "×"}

// Issue 生成一道新题：两个1~10的操作数，运算符在加减乘中均匀选取
func (s *QuestionStore) Issue() MathQuestion {
	a := rand.Intn(10) + 1
	b := rand.Intn(10) + 1
	op := operators[rand.Intn(len(operators))]

	var answer int
	switch op {
	case "+":
		answer = a + b
	case "-":
		answer = a - b
	case "×":
		answer = a * b
	}

	q := MathQuestion{
		ID:         uuid.NewString(),
		Expression: fmt.Sprintf("%d %s %d", a, op, b),
		Answer:     answer,
		ExpiresAt:  time.Now().Add(s.currentTTL()),
	}

	s.mu.Lock()
	s.questions[q.ID] = q
	s.mu.Unlock()

	return q
}

// Consume 取出并删除题目。未知ID、已消费或已过期都返回false，
// 过期记录顺手删除。
func (s *QuestionStore) Consume(id string) (MathQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return MathQuestion{}, false
	}
	delete(s.questions, id)

	if q.Expired(time.Now()) {
		return MathQuestion{}, false
	}
	return q, true
}

// SetTTL 动态调整新题的有效期（配置热更新用），已发出的题不受影响
func (s *QuestionStore) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()
}

func (s *QuestionStore) currentTTL() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttl
}

func (s *QuestionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

func (s *QuestionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *QuestionStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	for id, q := range s.questions {
		if q.Expired(now) {
			delete(s.questions, id)
		}
	}
	s.mu.Unlock()
}
