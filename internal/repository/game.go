package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"go_engine/internal/bootstrap"
	"go_engine/internal/domain/game"
	errs "go_engine/internal/errors"
)

const (
	gamesCollection = "games"
	opTimeout       = 5 * time.Second
)

// GameRepository keeps live games as codec documents in Redis and
// finished games in MongoDB.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func snapshotKey(gameID string) string {
	return "game:" + gameID
}

func (g *GameRepository) SaveSnapshot(ctx context.Context, gameID string, doc []byte) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := g.redis.Set(ctx, snapshotKey(gameID), doc, g.cfg.SnapshotTTL).Err(); err != nil {
		g.log.Errorw("failed to save snapshot", "game_id", gameID, "error", err)
		return fmt.Errorf("save snapshot %s: %w", gameID, err)
	}
	return nil
}

func (g *GameRepository) LoadSnapshot(ctx context.Context, gameID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc, err := g.redis.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Errorw("failed to load snapshot", "game_id", gameID, "error", err)
		return nil, fmt.Errorf("load snapshot %s: %w", gameID, err)
	}
	return doc, nil
}

func (g *GameRepository) DeleteSnapshot(ctx context.Context, gameID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return g.redis.Del(ctx, snapshotKey(gameID)).Err()
}

// ArchiveGame stores a finished game. A game that is undone and finished
// again replaces its earlier record.
func (g *GameRepository) ArchiveGame(ctx context.Context, archived game.ArchivedGame) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	filter := bson.M{"game_id": archived.GameID}
	opts := options.Replace().SetUpsert(true)

	if _, err := collection.ReplaceOne(ctx, filter, archived, opts); err != nil {
		g.log.Errorf("failed to archive game %s: %v", archived.GameID, err)
		return fmt.Errorf("archive game %s: %w", archived.GameID, err)
	}

	g.log.Infof("game archived with id: %s", archived.GameID)
	return nil
}

func (g *GameRepository) GetArchivedGame(ctx context.Context, gameID string) (game.ArchivedGame, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	var result game.ArchivedGame
	err := collection.FindOne(ctx, bson.M{"game_id": gameID}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.ArchivedGame{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.ArchivedGame{}, err
	}
	return result, nil
}
