package service

import (
	"testing"

	"mathcoins_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingStore struct {
	setting    model.Setting
	lastFields map[string]interface{}
}

func (f *fakeSettingStore) Get() (*model.Setting, error) {
	s := f.setting
	return &s, nil
}

func (f *fakeSettingStore) Update(fields map[string]interface{}) (*model.Setting, error) {
	f.lastFields = fields
	if v, ok := fields["reward_amount"]; ok {
		f.setting.RewardAmount = v.(int)
	}
	if v, ok := fields["penalty_amount"]; ok {
		f.setting.PenaltyAmount = v.(int)
	}
	if v, ok := fields["conversion_rate"]; ok {
		f.setting.ConversionRate = v.(int)
	}
	s := f.setting
	return &s, nil
}

func TestSettingServiceGetWithoutRedis(t *testing.T) {
	repo := &fakeSettingStore{setting: model.Setting{RewardAmount: 2, PenaltyAmount: 2, ConversionRate: 100}}
	svc := NewSettingService(repo, nil)

	setting, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, setting.RewardAmount)
	assert.Equal(t, 100, setting.ConversionRate)
}

func TestSettingServicePartialUpdate(t *testing.T) {
	repo := &fakeSettingStore{setting: model.Setting{RewardAmount: 2, PenaltyAmount: 2, ConversionRate: 100}}
	svc := NewSettingService(repo, nil)

	reward := 5
	updated, err := svc.Update(UpdateSettingInput{RewardAmount: &reward})
	require.NoError(t, err)

	// 只传的字段才进更新集
	assert.Equal(t, map[string]interface{}{"reward_amount": 5}, repo.lastFields)
	assert.Equal(t, 5, updated.RewardAmount)
	assert.Equal(t, 2, updated.PenaltyAmount)
	assert.Equal(t, 100, updated.ConversionRate)
}

func TestSettingServiceFullUpdate(t *testing.T) {
	repo := &fakeSettingStore{setting: model.Setting{RewardAmount: 2, PenaltyAmount: 2, ConversionRate: 100}}
	svc := NewSettingService(repo, nil)

	reward, penalty, rate := 3, 1, 50
	updated, err := svc.Update(UpdateSettingInput{
		RewardAmount:   &reward,
		PenaltyAmount:  &penalty,
		ConversionRate: &rate,
	})
	require.NoError(t, err)

	assert.Len(t, repo.lastFields, 3)
	assert.Equal(t, 3, updated.RewardAmount)
	assert.Equal(t, 1, updated.PenaltyAmount)
	assert.Equal(t, 50, updated.ConversionRate)
}

func TestSettingServiceEmptyUpdate(t *testing.T) {
	repo := &fakeSettingStore{setting: model.Setting{RewardAmount: 2, PenaltyAmount: 2, ConversionRate: 100}}
	svc := NewSettingService(repo, nil)

	updated, err := svc.Update(UpdateSettingInput{})
	require.NoError(t, err)

	assert.Empty(t, repo.lastFields)
	assert.Equal(t, 2, updated.RewardAmount)
}
