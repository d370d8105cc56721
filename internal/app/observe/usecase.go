package observe

import (
	"context"
	"errors"
	"strings"

	"campuslife/internal/app/notify"
	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type Request struct {
	PlayerID string
}

// Response is the observable state snapshot the UI renders from. The core
// does not dictate how it is rendered.
type Response struct {
	State            life.PlayerStateAggregate `json:"state"`
	Phase            life.Phase                `json:"phase"`
	CurrentEvent     *life.NarrativeEvent      `json:"current_event,omitempty"`
	AcademicStanding string                    `json:"academic_standing"`
	ActiveQuests     int                       `json:"active_quests"`
	Notifications    []notify.Notification     `json:"notifications"`
}

type UseCase struct {
	StateRepo ports.PlayerStateRepository
	Feed      *notify.Feed
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByPlayerID(ctx, req.PlayerID)
	if err != nil {
		return Response{}, err
	}

	active := 0
	for _, q := range state.Quests {
		if q.Status == life.QuestActive {
			active++
		}
	}

	var notifications []notify.Notification
	if u.Feed != nil {
		notifications = u.Feed.List(req.PlayerID)
	}

	return Response{
		State:            state,
		Phase:            state.Phase,
		CurrentEvent:     state.CurrentEvent,
		AcademicStanding: standing(state.GPA),
		ActiveQuests:     active,
		Notifications:    notifications,
	}, nil
}

func standing(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "dean's list"
	case gpa >= 3.0:
		return "good standing"
	case gpa >= 2.0:
		return "passing"
	default:
		return "academic probation"
	}
}
