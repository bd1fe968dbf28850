package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/UnveiledSafe8/SignalSiege/internal/bootstrap"
	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

const (
	gamesCollection = "games"
	snapshotPrefix  = "game:"
	lockPrefix      = "lock:game:"
)

// unlockScript deletes the lock only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// GameRepository keeps game documents in Mongo and the live copy of each
// game, snapshot included, in Redis.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
	codec *SnapshotCodec
}

type cachedGame struct {
	Game     game.Game   `json:"game"`
	Snapshot game.Record `json:"snapshot"`
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) (*GameRepository, error) {
	codec, err := NewSnapshotCodec()
	if err != nil {
		return nil, err
	}
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
		codec: codec,
	}, nil
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
	}
}

// generateHash derives the short public code shown to spectators.
func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection(gamesCollection)
	filter := bson.M{"public_key": gameKeyPublic}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) InsertGame(ctx context.Context, doc game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, doc)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return fmt.Errorf("%w: %v", errs.ErrCreateGameFailed, err)
	}
	g.log.Infof("game inserted successfully with key: %s", doc.GameKey)

	g.cache(ctx, doc)
	return nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, doc game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"game_key": doc.GameKey}
	res, err := g.mongo.Collection(gamesCollection).ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(false))
	if err != nil {
		g.log.Errorf("failed to update game %s: %v", doc.GameKey, err)
		return fmt.Errorf("update game %s: %w", doc.GameKey, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update game %s: %w", doc.GameKey, errs.ErrGameNotFound)
	}

	g.cache(ctx, doc)
	return nil
}

// GetGame returns the game with its snapshot, from Redis when cached.
func (g *GameRepository) GetGame(ctx context.Context, gameKey string) (game.Game, error) {
	data, err := g.redis.Get(ctx, snapshotPrefix+gameKey).Bytes()
	switch {
	case err == nil:
		if doc, ok := g.decodeCached(gameKey, data); ok {
			return doc, nil
		}
	case !errors.Is(err, redis.Nil):
		g.log.Warnw("redis get failed, reading from mongo", "game_key", gameKey, "error", err)
	}

	doc, err := g.findOne(ctx, bson.M{"game_key": gameKey})
	if err != nil {
		return game.Game{}, err
	}
	g.cache(ctx, doc)
	return doc, nil
}

// decodeCached reads a cached game. An unreadable entry is logged and
// reported as a miss.
func (g *GameRepository) decodeCached(gameKey string, data []byte) (game.Game, bool) {
	var cached cachedGame
	if decodeErr := g.codec.Decode(data, &cached); decodeErr != nil {
		g.log.Warnw("dropping unreadable cached game", "game_key", gameKey, "error", decodeErr)
		return game.Game{}, false
	}
	cached.Game.Snapshot = cached.Snapshot
	return cached.Game, true
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, publicKey string) (game.Game, error) {
	return g.findOne(ctx, bson.M{"public_key": publicKey})
}

func (g *GameRepository) findOne(ctx context.Context, filter bson.M) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Game{}, fmt.Errorf("find game: %w", err)
	}
	return result, nil
}

func (g *GameRepository) cache(ctx context.Context, doc game.Game) {
	data, err := g.codec.Encode(cachedGame{Game: doc, Snapshot: doc.Snapshot})
	if err != nil {
		g.log.Errorf("failed to encode game %s: %v", doc.GameKey, err)
		return
	}
	if err := g.redis.Set(ctx, snapshotPrefix+doc.GameKey, data, g.cfg.SnapshotTTL()).Err(); err != nil {
		g.log.Warnw("failed to cache game", "game_key", doc.GameKey, "error", err)
	}
}

// Lock takes the per-game lock so that only one request plays on a game at a
// time. The returned func releases it.
func (g *GameRepository) Lock(ctx context.Context, gameKey string) (func(), error) {
	token := uuid.New().String()
	key := lockPrefix + gameKey
	ok, err := g.redis.SetNX(ctx, key, token, g.cfg.LockTTL()).Result()
	if err != nil {
		return nil, fmt.Errorf("lock game %s: %w", gameKey, err)
	}
	if !ok {
		return nil, errs.ErrGameLocked
	}
	return func() {
		if err := unlockScript.Run(context.WithoutCancel(ctx), g.redis, []string{key}, token).Err(); err != nil {
			g.log.Warnw("failed to release game lock", "game_key", gameKey, "error", err)
		}
	}, nil
}

func (g *GameRepository) Close() {
	g.codec.Close()
}
