package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

// MemoryGameRepository keeps games in process. The server uses it when
// STORAGE=memory; games are lost on restart.
type MemoryGameRepository struct {
	log   *zap.SugaredLogger
	codec *SnapshotCodec

	mu     sync.Mutex
	games  map[string][]byte
	public map[string]string
	locked map[string]bool
}

func NewMemoryGameRepository(log *zap.SugaredLogger) (*MemoryGameRepository, error) {
	codec, err := NewSnapshotCodec()
	if err != nil {
		return nil, err
	}
	return &MemoryGameRepository{
		log:    log,
		codec:  codec,
		games:  make(map[string][]byte),
		public: make(map[string]string),
		locked: make(map[string]bool),
	}, nil
}

func (m *MemoryGameRepository) GenerateGameKeys(context.Context) (gameKeySecret string, gameKeyPublic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)
		if _, taken := m.public[gameKeyPublic]; !taken {
			return gameKeySecret, gameKeyPublic
		}
	}
}

func (m *MemoryGameRepository) InsertGame(_ context.Context, doc game.Game) error {
	data, err := m.codec.Encode(cachedGame{Game: doc, Snapshot: doc.Snapshot})
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCreateGameFailed, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[doc.GameKey]; ok {
		return fmt.Errorf("%w: duplicate key %s", errs.ErrCreateGameFailed, doc.GameKey)
	}
	m.games[doc.GameKey] = data
	m.public[doc.PublicKey] = doc.GameKey
	m.log.Infof("game inserted successfully with key: %s", doc.GameKey)
	return nil
}

func (m *MemoryGameRepository) UpdateGame(_ context.Context, doc game.Game) error {
	data, err := m.codec.Encode(cachedGame{Game: doc, Snapshot: doc.Snapshot})
	if err != nil {
		return fmt.Errorf("update game %s: %w", doc.GameKey, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[doc.GameKey]; !ok {
		return fmt.Errorf("update game %s: %w", doc.GameKey, errs.ErrGameNotFound)
	}
	m.games[doc.GameKey] = data
	return nil
}

func (m *MemoryGameRepository) GetGame(_ context.Context, gameKey string) (game.Game, error) {
	m.mu.Lock()
	data, ok := m.games[gameKey]
	m.mu.Unlock()
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	var cached cachedGame
	if err := m.codec.Decode(data, &cached); err != nil {
		return game.Game{}, fmt.Errorf("read game %s: %w", gameKey, err)
	}
	cached.Game.Snapshot = cached.Snapshot
	return cached.Game, nil
}

func (m *MemoryGameRepository) GetGameByPublicKey(ctx context.Context, publicKey string) (game.Game, error) {
	m.mu.Lock()
	gameKey, ok := m.public[publicKey]
	m.mu.Unlock()
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	return m.GetGame(ctx, gameKey)
}

// Lock fails with ErrGameLocked while another caller holds the game.
func (m *MemoryGameRepository) Lock(_ context.Context, gameKey string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[gameKey] {
		return nil, errs.ErrGameLocked
	}
	m.locked[gameKey] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locked, gameKey)
			m.mu.Unlock()
		})
	}, nil
}

func (m *MemoryGameRepository) Close() {
	m.codec.Close()
}
