package workflow

import (
	"context"
	"fmt"
	"sort"
)

// GuardFunc decides whether a transition may happen
type GuardFunc func(ctx context.Context) bool

// StateMachineBuilder collects per-state transitions and builds machines from them
type StateMachineBuilder interface {
	Configure(state State) StateConfiguration
	Build(initialState State) StateMachine
}

// StateConfiguration configures the transitions leaving one state
type StateConfiguration interface {
	Permit(trigger Trigger, toState State) StateConfiguration
	PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration
}

type transition struct {
	toState State
	guard   GuardFunc
}

type transitionTable map[State]map[Trigger][]transition

type stateConfig struct {
	from  State
	table transitionTable
}

type stateMachineBuilder struct {
	table transitionTable
}

type stateMachine struct {
	current State
	table   transitionTable
}

// NewBuilder creates an empty builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{table: make(transitionTable)}
}

// Configure returns the configuration for state, creating it on first use
func (b *stateMachineBuilder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	if _, ok := b.table[state]; !ok {
		b.table[state] = make(map[Trigger][]transition)
	}
	return &stateConfig{from: state, table: b.table}
}

// Build snapshots the configured table so later Configure calls don't leak into the machine
func (b *stateMachineBuilder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	snapshot := make(transitionTable, len(b.table))
	for state, triggers := range b.table {
		copied := make(map[Trigger][]transition, len(triggers))
		for trigger, ts := range triggers {
			copied[trigger] = append([]transition(nil), ts...)
		}
		snapshot[state] = copied
	}

	return &stateMachine{current: initialState, table: snapshot}
}

// Permit allows trigger to move to toState unconditionally
func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	return c.PermitIf(trigger, toState, nil)
}

// PermitIf allows trigger to move to toState when guard passes.
// Several guarded transitions for one trigger are tried in order.
func (c *stateConfig) PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.table[c.from][trigger] = append(c.table[c.from][trigger], transition{toState: toState, guard: guard})
	return c
}

func (m *stateMachine) State() State {
	return m.current
}

func (m *stateMachine) CanFire(trigger Trigger) bool {
	return len(m.table[m.current][trigger]) > 0
}

func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	ts := m.table[m.current][trigger]
	if len(ts) == 0 {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}

	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: %s from %s", ErrGuardFailed, trigger, m.current)
}

// PermittedTriggers returns the configured triggers sorted by name
func (m *stateMachine) PermittedTriggers() []Trigger {
	triggers := make([]Trigger, 0, len(m.table[m.current]))
	for trigger := range m.table[m.current] {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
