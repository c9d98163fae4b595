package repository

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mathcoins_backend/internal/model"
)

func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// setupTestDB 启动一个一次性MySQL容器并完成迁移，无Docker时跳过
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	container, err := tcmysql.Run(ctx,
		"mysql:8.0",
		tcmysql.WithDatabase("testdb"),
		tcmysql.WithUsername("testuser"),
		tcmysql.WithPassword("testpass"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err)

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Setting{}, &model.Withdrawal{}))
	return db
}

var userSeq uint64

func createTestUser(t *testing.T, db *gorm.DB, coins int) *model.User {
	t.Helper()
	n := atomic.AddUint64(&userSeq, 1)
	user := &model.User{
		Name:     fmt.Sprintf("player%d", n),
		Email:    fmt.Sprintf("player%d@example.com", n),
		Password: "irrelevant",
		Role:     model.Player,
		Coins:    coins,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestApplyAnswerOutcomeCorrect(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 5)

	updated, err := repo.ApplyAnswerOutcome(user.ID, 2, true)
	require.NoError(t, err)

	assert.Equal(t, 7, updated.Coins)
	assert.Equal(t, 1, updated.TotalQuestions)
	assert.Equal(t, 1, updated.CorrectAnswers)
	assert.Equal(t, 0, updated.IncorrectAnswers)
}

func TestApplyAnswerOutcomeIncorrectClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 1)

	updated, err := repo.ApplyAnswerOutcome(user.ID, -2, false)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.Coins, "balance is clamped, never negative")
	assert.Equal(t, 1, updated.TotalQuestions)
	assert.Equal(t, 0, updated.CorrectAnswers)
	assert.Equal(t, 1, updated.IncorrectAnswers)
}

func TestApplyAnswerOutcomeUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.ApplyAnswerOutcome(99999, 2, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// 同一用户的并发结算全部生效：读改写收敛在单条UPDATE里，没有丢失更新
func TestApplyAnswerOutcomeConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 0)

	const rounds = 10
	var wg sync.WaitGroup
	wg.Add(rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.ApplyAnswerOutcome(user.ID, 2, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*rounds, final.Coins)
	assert.Equal(t, rounds, final.TotalQuestions)
	assert.Equal(t, rounds, final.CorrectAnswers)
}

func TestDeductCoinsClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 3)

	rows, err := DeductCoins(db, user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	final, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Coins)
}

func TestDeductCoinsUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	rows, err := DeductCoins(db, 99999, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
