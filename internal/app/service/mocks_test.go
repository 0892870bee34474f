package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

type MockGuildConfigRepo struct{ mock.Mock }

func (m *MockGuildConfigRepo) All(ctx context.Context) (map[string]domain.GuildConfig, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).(map[string]domain.GuildConfig)
	return all, args.Error(1)
}

func (m *MockGuildConfigRepo) Upsert(ctx context.Context, guildID string, cfg domain.GuildConfig) error {
	args := m.Called(ctx, guildID, cfg)
	return args.Error(0)
}

type MockMapFileRepo struct{ mock.Mock }

func (m *MockMapFileRepo) Get(ctx context.Context, mapID uint32) ([]byte, error) {
	args := m.Called(ctx, mapID)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockMapFileRepo) Put(ctx context.Context, mapID uint32, content []byte) error {
	args := m.Called(ctx, mapID, content)
	return args.Error(0)
}

type MockMapFileAPI struct{ mock.Mock }

func (m *MockMapFileAPI) MapFile(ctx context.Context, mapID uint32) ([]byte, error) {
	args := m.Called(ctx, mapID)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
