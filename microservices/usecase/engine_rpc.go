package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"go_engine/internal/domain/game"
	errs "go_engine/internal/errors"
	gameuc "go_engine/internal/usecase/game"
	enginerpc "go_engine/microservices/proto"
)

// EngineServer exposes the game use case over gRPC.
type EngineServer struct {
	games *gameuc.GameUseCase
	log   *zap.SugaredLogger
	enginerpc.UnimplementedGameServiceServer
}

func NewEngineServer(games *gameuc.GameUseCase, log *zap.SugaredLogger) *EngineServer {
	return &EngineServer{
		games: games,
		log:   log,
	}
}

func (e *EngineServer) NewGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req game.CreateGameRequest
	size, ok, err := intField(in, "board_size", errs.ErrInvalidSize)
	if err != nil {
		return e.reply(enginerpc.MethodNewGame, nil, err)
	}
	if ok {
		req.BoardSize = size
	}
	if v, ok := in.GetFields()["komi"]; ok {
		komi := v.GetNumberValue()
		req.Komi = &komi
	}
	resp, err := e.games.CreateGame(ctx, req)
	return e.reply(enginerpc.MethodNewGame, resp, err)
}

func (e *EngineServer) Play(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := game.MoveRequest{Vertex: in.GetFields()["vertex"].GetStringValue()}
	if req.Vertex == "" {
		row, col, err := coordFields(in)
		if err != nil {
			return e.reply(enginerpc.MethodPlay, nil, err)
		}
		req.Row, req.Col = &row, &col
	}
	state, err := e.games.Play(ctx, gameID(in), req)
	return e.reply(enginerpc.MethodPlay, state, err)
}

func (e *EngineServer) Pass(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	state, err := e.games.Pass(ctx, gameID(in))
	return e.reply(enginerpc.MethodPass, state, err)
}

func (e *EngineServer) Resign(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	state, err := e.games.Resign(ctx, gameID(in))
	return e.reply(enginerpc.MethodResign, state, err)
}

func (e *EngineServer) Undo(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	state, err := e.games.Undo(ctx, gameID(in))
	return e.reply(enginerpc.MethodUndo, state, err)
}

func (e *EngineServer) Redo(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	state, err := e.games.Redo(ctx, gameID(in))
	return e.reply(enginerpc.MethodRedo, state, err)
}

func (e *EngineServer) GetState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	state, err := e.games.GetState(ctx, gameID(in))
	return e.reply(enginerpc.MethodGetState, state, err)
}

func (e *EngineServer) GetGroup(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	row, col, err := coordFields(in)
	if err != nil {
		return e.reply(enginerpc.MethodGetGroup, nil, err)
	}
	view, err := e.games.GetGroup(ctx, gameID(in), row, col)
	return e.reply(enginerpc.MethodGetGroup, view, err)
}

// Export answers with the state document itself.
func (e *EngineServer) Export(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc, err := e.games.Export(ctx, gameID(in))
	if err != nil {
		return e.reply(enginerpc.MethodExport, nil, err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(doc, out); err != nil {
		return e.reply(enginerpc.MethodExport, nil, fmt.Errorf("%w: %v", errs.ErrInternal, err))
	}
	return out, nil
}

// Import takes a document produced by Export.
func (e *EngineServer) Import(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc, err := protojson.Marshal(in)
	if err != nil {
		return e.reply(enginerpc.MethodImport, nil, fmt.Errorf("%w: %v", errs.ErrImport, err))
	}
	resp, err := e.games.ImportGame(ctx, doc)
	return e.reply(enginerpc.MethodImport, resp, err)
}

func (e *EngineServer) reply(method string, v any, err error) (*structpb.Struct, error) {
	if err != nil {
		st := enginerpc.Status(err)
		if st.Code() == codes.Internal {
			e.log.Errorw("rpc failed", "method", method, "error", err)
		}
		return nil, st.Err()
	}
	out, err := toStruct(v)
	if err != nil {
		e.log.Errorw("cannot encode rpc reply", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func gameID(in *structpb.Struct) string {
	return in.GetFields()["game_id"].GetStringValue()
}

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

// intField reads an integral number. A missing field is reported with
// ok false; anything else that is not an integer wraps invalid.
func intField(in *structpb.Struct, key string, invalid error) (int, bool, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > maxExactInt {
		return 0, false, fmt.Errorf("%w: %s must be an integer", invalid, key)
	}
	return int(n.NumberValue), true, nil
}

func coordFields(in *structpb.Struct) (int, int, error) {
	row, okRow, err := intField(in, "row", errs.ErrOutOfBounds)
	if err != nil {
		return 0, 0, err
	}
	col, okCol, err := intField(in, "col", errs.ErrOutOfBounds)
	if err != nil {
		return 0, 0, err
	}
	if !okRow || !okCol {
		return 0, 0, fmt.Errorf("%w: row and col are required", errs.ErrOutOfBounds)
	}
	return row, col, nil
}
