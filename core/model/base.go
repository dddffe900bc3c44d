// Package model provides core abstractions shared by all estimators.
//
// BaseEstimator supplies fitted-state tracking for estimators that embed
// it; StateManager supplies the same tracking by composition with
// goroutine-safe access for estimators that are used concurrently.
// All estimators must be fitted before prediction or transformation.
package model

import "sync"

// EstimatorState represents the learning state of a model.
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained.
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained.
	Fitted
)

// BaseEstimator is the base structure for all models.
type BaseEstimator struct {
	// State holds the model's learning state.
	State EstimatorState
}

// IsFitted returns whether the model has been fitted with training data.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted. Called by model implementations
// after successful training.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its initial untrained state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}

// StateManager tracks fitted state with goroutine-safe access. Use it by
// composition when an estimator is shared across goroutines.
type StateManager struct {
	mu    sync.RWMutex
	state EstimatorState
}

// NewStateManager creates a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// IsFitted reports whether SetFitted has been called.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Fitted
}

// SetFitted marks the state as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	s.state = Fitted
	s.mu.Unlock()
}

// Reset returns the state to NotFitted.
func (s *StateManager) Reset() {
	s.mu.Lock()
	s.state = NotFitted
	s.mu.Unlock()
}
