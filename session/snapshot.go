package session

import "vidqa/types"

// Snapshot is a read-only copy of the session. Mutating it does not affect
// the store.
type Snapshot struct {
	Library      []types.Video
	Selection    *types.Video
	Answer       *types.Answer
	Summary      *types.Summary
	Conversation []types.ConversationMessage
	Statuses     map[types.Workflow]types.Status
	Busy         bool
	Logs         []types.LogEntry
}

// Status returns the status of one workflow, Idle when never set
func (s Snapshot) Status(w types.Workflow) types.Status {
	if st, ok := s.Statuses[w]; ok {
		return st
	}
	return types.Idle("")
}

// Snapshot returns a copy of the current state (thread-safe)
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Library:      append([]types.Video{}, s.library...),
		Conversation: append([]types.ConversationMessage{}, s.conversation...),
		Statuses:     make(map[types.Workflow]types.Status, len(s.statuses)),
		Busy:         len(s.inFlight) > 0,
		Logs:         append([]types.LogEntry{}, s.logs...),
	}
	for w, st := range s.statuses {
		snap.Statuses[w] = st
	}
	if s.selection != nil {
		if i := s.indexOf(*s.selection); i >= 0 {
			v := s.library[i]
			snap.Selection = &v
		}
	}
	if s.answer != nil {
		a := *s.answer
		a.Sources = append([]types.SourceCitation{}, s.answer.Sources...)
		snap.Answer = &a
	}
	if s.summary != nil {
		sum := *s.summary
		sum.Highlights = cloneHighlights(s.summary.Highlights)
		snap.Summary = &sum
	}
	return snap
}

// Selection returns a token for the current selection
func (s *Store) Selection() (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selection == nil {
		return Token{}, false
	}
	return Token{VideoID: *s.selection, Epoch: s.epoch}, true
}

// Video looks up a library entry by id
func (s *Store) Video(id types.VideoID) (types.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.library[i], true
	}
	return types.Video{}, false
}

// FindVideo looks up a library entry by its id string
func (s *Store) FindVideo(id string) (types.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.library {
		if v.ID.Value == id {
			return v, true
		}
	}
	return types.Video{}, false
}

// Conversation returns a copy of the current question history
func (s *Store) Conversation() []types.ConversationMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.ConversationMessage{}, s.conversation...)
}

// Busy reports whether any workflow is pending
func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inFlight) > 0
}

// Pending reports whether a workflow slot is in flight
func (s *Store) Pending(w types.Workflow, target string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.inFlight[slot{workflow: w, target: target}]
	return ok
}
