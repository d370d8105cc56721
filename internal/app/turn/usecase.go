package turn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var (
	ErrInvalidRequest = errors.New("invalid turn request")
	ErrTurnInProgress = errors.New("turn advance already in progress")
	ErrEventPending   = errors.New("a narrative event is awaiting resolution")
	ErrGameEnded      = errors.New("the run has ended")
	ErrTurnFailed     = errors.New("turn advance failed")
)

type UseCase struct {
	TxManager      ports.TxManager
	StateRepo      ports.PlayerStateRepository
	TurnRepo       ports.TurnExecutionRepository
	EventRepo      ports.EventRepository
	Story          ports.StoryProvider
	QuestTemplates []life.QuestTemplate
	JobSalaries    map[string]int64
	Metrics        ports.TurnMetrics
	Notifier       ports.Notifier
	Guard          *Guard
	Now            func() time.Time
}

// Execute advances the calendar one week and acquires the next narrative
// event. The postcondition is phase=event with a pending event, or
// phase=ending past the final year. The in-flight flag is released on every
// path, including panic, so a failed turn can never lock the engine.
func (u *UseCase) Execute(ctx context.Context, req Request) (out Response, err error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	if !u.Guard.TryAcquire(req.PlayerID) {
		u.recordConflict()
		return Response{}, ErrTurnInProgress
	}
	defer u.Guard.Release(req.PlayerID)
	defer func() {
		if r := recover(); r != nil {
			out = Response{}
			err = fmt.Errorf("%w: %v", ErrTurnFailed, r)
			u.recordFailure()
		}
	}()

	out, err = u.advance(ctx, req.PlayerID)
	if err != nil {
		u.recordFailure()
		return Response{}, err
	}
	return out, nil
}

// ForceUnlock releases a stuck in-flight flag. Last resort for operators.
func (u *UseCase) ForceUnlock(playerID string) {
	u.Guard.ForceUnlock(strings.TrimSpace(playerID))
}

func (u *UseCase) advance(ctx context.Context, playerID string) (Response, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var (
		state  life.PlayerStateAggregate
		next   life.Calendar
		events []life.DomainEvent
		ended  bool
		replay *ports.TurnExecutionRecord
	)

	// Step one: calendar carry, resource accrual, commit. Event generation
	// happens outside this transaction so a slow provider never holds a
	// database transaction open.
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		state, err = u.StateRepo.GetByPlayerID(txCtx, playerID)
		if err != nil {
			return err
		}
		switch state.Phase {
		case life.PhaseEnding:
			return ErrGameEnded
		case life.PhaseEvent:
			return ErrEventPending
		case life.PhasePlaying:
		default:
			return fmt.Errorf("%w: cannot advance from phase %q", ErrInvalidRequest, state.Phase)
		}

		prev := state.Calendar
		next = state.Calendar.Next()
		if u.TurnRepo != nil {
			if rec, err := u.TurnRepo.GetByTurnKey(txCtx, playerID, next.TurnKey()); err == nil && rec != nil {
				replay = rec
				return nil
			} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
				return err
			}
		}

		expected := state.Version
		state.Calendar = next
		state.UpdatedAt = nowFn()
		state.Version++

		if next.Graduated() {
			state.Phase = life.PhaseEnding
			state.CurrentEvent = nil
			ended = true
			events = append(events, life.DomainEvent{
				Type:       "graduated",
				OccurredAt: nowFn(),
				Payload:    map[string]any{"year": next.Year - 1, "gpa": state.GPA},
			})
		} else {
			if next.Week == 1 {
				events = append(events, life.DomainEvent{
					Type:       "term_ended",
					OccurredAt: nowFn(),
					Payload:    map[string]any{"year": prev.Year, "semester": prev.Semester},
				})
			}
			u.applyWeeklyAccrual(&state, next, nowFn, &events)
		}

		if err := u.StateRepo.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}
		return u.appendEvents(txCtx, playerID, events)
	})
	if err != nil {
		return Response{}, err
	}
	if replay != nil {
		return Response{
			TurnKey:      replay.TurnKey,
			UpdatedState: replay.Result.UpdatedState,
			Events:       replay.Result.Events,
			Ended:        replay.Result.Ended,
		}, nil
	}

	if ended {
		u.recordTurn("ended")
		u.notify(playerID, "Graduation. Your campus story has reached its end.")
		return u.finishTurn(ctx, playerID, state, next, events, true, nowFn)
	}

	// Step two: acquire the narrative event and couple phase to it.
	event := u.safeGenerate(ctx, state)
	fellBack := event.Source != life.SourceProvider

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		expected := state.Version
		state.Phase = life.PhaseEvent
		state.CurrentEvent = &event
		state.UpdatedAt = nowFn()
		state.Version++

		started := life.CheckTriggers(&state, u.QuestTemplates)

		turnEvents := []life.DomainEvent{{
			Type:       "event_presented",
			OccurredAt: nowFn(),
			Payload:    map[string]any{"event_id": event.ID, "source": string(event.Source), "choices": len(event.Choices)},
		}}
		if fellBack {
			turnEvents = append(turnEvents, life.DomainEvent{
				Type:       "provider_fallback",
				OccurredAt: nowFn(),
				Payload:    map[string]any{"event_id": event.ID},
			})
		}
		for _, q := range started {
			turnEvents = append(turnEvents, life.DomainEvent{
				Type:       "quest_started",
				OccurredAt: nowFn(),
				Payload:    map[string]any{"template_id": q.TemplateID},
			})
			u.notify(playerID, "New quest: "+u.questTitle(q.TemplateID))
		}
		events = append(events, turnEvents...)

		if err := u.StateRepo.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}
		return u.appendEvents(txCtx, playerID, turnEvents)
	})
	if err != nil {
		return Response{}, err
	}

	u.recordTurn("ok")
	if fellBack {
		u.recordFallback()
		u.notify(playerID, "Offline mode: this week's event was drawn locally.")
	}
	u.notify(playerID, fmt.Sprintf("Week advanced to year %d, semester %d, week %d.", next.Year, next.Semester, next.Week))

	return u.finishTurn(ctx, playerID, state, next, events, false, nowFn)
}

func (u *UseCase) applyWeeklyAccrual(state *life.PlayerStateAggregate, next life.Calendar, nowFn func() time.Time, events *[]life.DomainEvent) {
	state.ActionPoints = life.MaxActionPoints

	accrual := []life.Effect{
		{Kind: life.EffectAttribute, Attribute: life.AttrStamina, Delta: life.TurnStaminaRecovery},
		{Kind: life.EffectAttribute, Attribute: life.AttrStress, Delta: -life.TurnStressDecay},
	}
	var income int64
	if next.AbsoluteWeek()%life.AllowanceCadenceWeeks == 0 {
		income += life.AllowanceAmount
	}
	if state.Flags.Employed {
		income += u.JobSalaries[state.Flags.JobID]
	}
	if income > 0 {
		accrual = append(accrual, life.Effect{Kind: life.EffectMoney, Delta: float64(income)})
	}
	life.ApplyEffects(state, accrual)

	*events = append(*events, life.DomainEvent{
		Type:       "turn_advanced",
		OccurredAt: nowFn(),
		Payload: map[string]any{
			"turn_key": next.TurnKey(),
			"year":     next.Year,
			"semester": next.Semester,
			"week":     next.Week,
			"income":   income,
		},
	})
}

// safeGenerate shields the turn loop from a provider implementation that
// violates its totality contract: any panic or nil provider degrades to the
// local emergency event so the turn still completes.
func (u *UseCase) safeGenerate(ctx context.Context, state life.PlayerStateAggregate) (event life.NarrativeEvent) {
	defer func() {
		if r := recover(); r != nil {
			event = emergencyEvent(state.Calendar)
		}
	}()
	if u.Story == nil {
		return emergencyEvent(state.Calendar)
	}
	return u.Story.GenerateEvent(ctx, state, "")
}

func (u *UseCase) finishTurn(ctx context.Context, playerID string, state life.PlayerStateAggregate, next life.Calendar, events []life.DomainEvent, ended bool, nowFn func() time.Time) (Response, error) {
	resp := Response{
		TurnKey:      next.TurnKey(),
		UpdatedState: state,
		Events:       events,
		Ended:        ended,
	}
	if u.TurnRepo != nil {
		record := ports.TurnExecutionRecord{
			PlayerID:  playerID,
			TurnKey:   next.TurnKey(),
			Result:    ports.TurnResult{UpdatedState: state, Events: events, Ended: ended},
			AppliedAt: nowFn(),
		}
		if err := u.TurnRepo.SaveExecution(ctx, record); err != nil {
			return Response{}, err
		}
	}
	return resp, nil
}

func (u *UseCase) appendEvents(ctx context.Context, playerID string, events []life.DomainEvent) error {
	if u.EventRepo == nil || len(events) == 0 {
		return nil
	}
	return u.EventRepo.Append(ctx, playerID, events)
}

func (u *UseCase) questTitle(templateID string) string {
	for _, t := range u.QuestTemplates {
		if t.ID == templateID {
			return t.Title
		}
	}
	return templateID
}

func (u *UseCase) notify(playerID, message string) {
	if u.Notifier != nil {
		u.Notifier.Notify(playerID, message)
	}
}

func (u *UseCase) recordTurn(result string) {
	if u.Metrics != nil {
		u.Metrics.RecordTurn(result)
	}
}

func (u *UseCase) recordFallback() {
	if u.Metrics != nil {
		u.Metrics.RecordFallback()
	}
}

func (u *UseCase) recordConflict() {
	if u.Metrics != nil {
		u.Metrics.RecordConflict()
	}
}

func (u *UseCase) recordFailure() {
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
}

// emergencyEvent is the second-level fallback behind the story provider's
// own fallback pool. It must stay dependency-free so nothing can stop a
// turn from completing.
func emergencyEvent(at life.Calendar) life.NarrativeEvent {
	return life.NarrativeEvent{
		ID:          "evt-quiet-week-" + at.TurnKey(),
		Title:       "A Quiet Week",
		Description: "Nothing remarkable happens on campus. Lectures, laundry, instant noodles.",
		Source:      life.SourceFallback,
		Choices: []life.EventChoice{
			{ID: "choice-study", Label: "Catch up on coursework", Effects: []life.Effect{
				{Kind: life.EffectAttribute, Attribute: life.AttrIQ, Delta: 1},
				{Kind: life.EffectAttribute, Attribute: life.AttrStress, Delta: 2},
			}},
			{ID: "choice-rest", Label: "Take it easy", Effects: []life.Effect{
				{Kind: life.EffectAttribute, Attribute: life.AttrStress, Delta: -3},
			}},
		},
	}
}
