package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"vidqa/types"
)

var (
	// ErrUnknownVideo is returned when an id is not in the library
	ErrUnknownVideo = errors.New("video is not in the library")
	// ErrStale is returned when a response arrives for a selection that is no
	// longer current
	ErrStale = errors.New("response is for a video that is no longer selected")
)

const defaultMaxLogs = 50

// Token pins a selection at a point in time. Responses carry the token they
// were requested under and are only committed while it is still current.
type Token struct {
	VideoID types.VideoID
	Epoch   uint64
}

// Store holds the complete session state with thread-safe access. The
// exported mutators are the only way state changes.
type Store struct {
	mu sync.RWMutex

	library   []types.Video
	selection *types.VideoID
	epoch     uint64

	// libVersion counts local library changes; changes remembers the last
	// one per id so a list fetched earlier cannot undo it
	libVersion uint64
	changes    map[types.VideoID]libraryChange

	answer       *types.Answer
	summary      *types.Summary
	conversation []types.ConversationMessage

	statuses map[types.Workflow]types.Status
	inFlight map[slot]struct{}

	logs    []types.LogEntry
	maxLogs int
	now     func() time.Time
}

type libraryChange struct {
	version uint64
	removed bool
}

type slot struct {
	workflow types.Workflow
	target   string
}

// NewStore creates an empty session
func NewStore() *Store {
	return &Store{
		library:  make([]types.Video, 0),
		changes:  make(map[types.VideoID]libraryChange),
		statuses: make(map[types.Workflow]types.Status),
		inFlight: make(map[slot]struct{}),
		logs:     make([]types.LogEntry, 0),
		maxLogs:  defaultMaxLogs,
		now:      time.Now,
	}
}

// AddVideo inserts a video or replaces the entry with the same id in place.
// A server-issued video whose source URL matches a provisional entry takes
// over that entry's position, and the selection follows it.
func (s *Store) AddVideo(v types.Video) error {
	if v.ID.IsZero() {
		return fmt.Errorf("add video: %w", ErrUnknownVideo)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(v)
	return nil
}

// AddAndSelect adds a video and selects it in one step, so no snapshot sees
// the new video unselected.
func (s *Store) AddAndSelect(v types.Video) error {
	if v.ID.IsZero() {
		return fmt.Errorf("add video: %w", ErrUnknownVideo)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(v)
	s.selectLocked(v.ID)
	return nil
}

func (s *Store) addLocked(v types.Video) {
	s.touchLocked(v.ID, false)

	if i := s.indexOf(v.ID); i >= 0 {
		s.library[i] = v
		return
	}

	if !v.ID.Provisional && v.SourceURL != "" {
		for i, existing := range s.library {
			if existing.ID.Provisional && existing.SourceURL == v.SourceURL {
				s.library[i] = v
				s.touchLocked(existing.ID, true)
				if s.selection != nil && *s.selection == existing.ID {
					id := v.ID
					s.selection = &id
				}
				s.rekeyLocked(existing.ID.Value, v.ID.Value)
				s.appendLogLocked(fmt.Sprintf("Confirmed %s as %s", existing.ID, v.ID))
				return
			}
		}
	}

	s.library = append(s.library, v)
}

// RemoveVideo deletes a video. If it was selected, the selection and every
// result tied to it are cleared in the same step.
func (s *Store) RemoveVideo(id types.VideoID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.library = append(s.library[:i:i], s.library[i+1:]...)
	s.touchLocked(id, true)

	if s.selection != nil && *s.selection == id {
		s.clearSelectionLocked()
	}
	return true
}

// SetSelection focuses a library video. Changing the selection drops the
// answer, summary and conversation of the previous one.
func (s *Store) SetSelection(id types.VideoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrUnknownVideo)
	}
	s.selectLocked(id)
	return nil
}

func (s *Store) selectLocked(id types.VideoID) {
	if s.selection != nil && *s.selection == id {
		return
	}
	s.clearSelectionLocked()
	s.selection = &id
}

// ClearSelection drops the selection
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection != nil {
		s.clearSelectionLocked()
	}
}

// SetAnswer commits an answer if token still names the current selection
func (s *Store) SetAnswer(token Token, answer types.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(token) {
		return ErrStale
	}
	answer.Sources = append([]types.SourceCitation{}, answer.Sources...)
	s.answer = &answer
	s.conversation = append(s.conversation,
		types.ConversationMessage{Role: types.RoleUser, Content: answer.Question},
		types.ConversationMessage{Role: types.RoleAssistant, Content: answer.Text},
	)
	return nil
}

// SetSummary commits a summary if token still names the current selection
func (s *Store) SetSummary(token Token, summary types.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(token) {
		return ErrStale
	}
	summary.Highlights = cloneHighlights(summary.Highlights)
	s.summary = &summary
	return nil
}

// SetConversation replaces the question history if token is still current
func (s *Store) SetConversation(token Token, msgs []types.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(token) {
		return ErrStale
	}
	s.conversation = append([]types.ConversationMessage{}, msgs...)
	return nil
}

// SetStatus records the displayed status of a workflow
func (s *Store) SetStatus(w types.Workflow, status types.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[w] = status
}

// ReplaceLibrary swaps in a freshly fetched library. Duplicate ids collapse
// onto their first position with the last entry's data. The selection
// survives only if its video is still present.
func (s *Store) ReplaceLibrary(videos []types.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(s.libVersion, videos)
}

// LibraryVersion identifies the library as it is now. Pass it to
// ReplaceLibrarySince when the fetched list was requested at this point.
func (s *Store) LibraryVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.libVersion
}

// ReplaceLibrarySince is ReplaceLibrary for a list requested at version
// since. Local adds and removals made after that point win over the list:
// removed videos are not brought back and added ones are kept.
func (s *Store) ReplaceLibrarySince(since uint64, videos []types.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(since, videos)
}

func (s *Store) replaceLocked(since uint64, videos []types.Video) {
	lib := make([]types.Video, 0, len(videos))
	pos := make(map[types.VideoID]int, len(videos))
	for _, v := range videos {
		if v.ID.IsZero() {
			continue
		}
		if c, ok := s.changes[v.ID]; ok && c.version > since && c.removed {
			continue
		}
		if i, ok := pos[v.ID]; ok {
			lib[i] = v
			continue
		}
		pos[v.ID] = len(lib)
		lib = append(lib, v)
	}

	for _, v := range s.library {
		c, ok := s.changes[v.ID]
		if !ok || c.version <= since || c.removed {
			continue
		}
		if i, listed := pos[v.ID]; listed {
			lib[i] = v
			continue
		}
		pos[v.ID] = len(lib)
		lib = append(lib, v)
	}
	s.library = lib

	for id, c := range s.changes {
		if c.version <= since {
			delete(s.changes, id)
		}
	}

	if s.selection != nil {
		if _, ok := pos[*s.selection]; !ok {
			s.clearSelectionLocked()
		}
	}
}

// Begin claims the in-flight slot for a workflow and target. It returns
// false while another run of the same slot is pending.
func (s *Store) Begin(w types.Workflow, target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slot{workflow: w, target: target}
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

// End releases a slot claimed by Begin
func (s *Store) End(w types.Workflow, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, slot{workflow: w, target: target})
}

// AddLog adds an activity entry (thread-safe)
func (s *Store) AddLog(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLogLocked(message)
}

// touchLocked records a local add or removal (must hold lock)
func (s *Store) touchLocked(id types.VideoID, removed bool) {
	s.libVersion++
	s.changes[id] = libraryChange{version: s.libVersion, removed: removed}
}

// clearSelectionLocked drops the selection and its results (must hold lock)
func (s *Store) clearSelectionLocked() {
	s.selection = nil
	s.epoch++
	s.answer = nil
	s.summary = nil
	s.conversation = nil
}

// rekeyLocked moves results tagged with a provisional id onto the server id
// (must hold lock)
func (s *Store) rekeyLocked(from, to string) {
	if s.answer != nil && s.answer.VideoID == from {
		s.answer.VideoID = to
	}
	if s.summary != nil && s.summary.VideoID == from {
		s.summary.VideoID = to
	}
}

func (s *Store) currentLocked(token Token) bool {
	return s.selection != nil && *s.selection == token.VideoID && s.epoch == token.Epoch
}

func (s *Store) indexOf(id types.VideoID) int {
	for i, v := range s.library {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) appendLogLocked(message string) {
	s.logs = append(s.logs, types.LogEntry{Timestamp: s.now(), Message: message})
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
}

func cloneHighlights(in []types.Highlight) []types.Highlight {
	out := make([]types.Highlight, len(in))
	for i, h := range in {
		h.SubPoints = append([]string{}, h.SubPoints...)
		out[i] = h
	}
	return out
}
