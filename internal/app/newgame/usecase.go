package newgame

import (
	"context"
	"errors"
	"strings"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var (
	ErrInvalidRequest = errors.New("invalid new game request")
	ErrAlreadyExists  = errors.New("player already has a run in progress")
)

type Request struct {
	PlayerID string
	Name     string
	Gender   string
	Age      int
}

type Response struct {
	State life.PlayerStateAggregate `json:"state"`
}

// UseCase covers character creation and reset. The creation wizard itself is
// an external collaborator; this records its outcome and moves the state
// machine to playing.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	Notifier  ports.Notifier
	Now       func() time.Time
}

func (u UseCase) Create(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.PlayerID == "" || req.Name == "" || req.Age <= 0 {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.StateRepo.GetByPlayerID(txCtx, req.PlayerID); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		state := life.NewPlayerState(req.PlayerID, life.Profile{
			Name:   req.Name,
			Gender: req.Gender,
			Age:    req.Age,
		})
		state.UpdatedAt = nowFn()
		if err := u.StateRepo.SaveWithVersion(txCtx, state, 0); err != nil {
			return err
		}
		out = Response{State: state}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if u.Notifier != nil {
		u.Notifier.Notify(req.PlayerID, "Welcome to campus, "+req.Name+".")
	}
	return out, nil
}

// Reset destroys the current run. A following Create starts over.
func (u UseCase) Reset(ctx context.Context, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ErrInvalidRequest
	}
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		err := u.StateRepo.Delete(txCtx, playerID)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		return err
	})
}
