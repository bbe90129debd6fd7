package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vidqa/client"
	"vidqa/session"
	"vidqa/types"
	"vidqa/workflow"
)

type stubService struct {
	processResp *client.ProcessResponse
	processErr  error
	healthy     bool
	deleted     []string
}

func (s *stubService) SubmitVideo(ctx context.Context, videoURL string) (*client.ProcessResponse, error) {
	return s.processResp, s.processErr
}

func (s *stubService) ListVideos(ctx context.Context) (*client.ListResponse, error) {
	return &client.ListResponse{}, nil
}

func (s *stubService) DeleteVideo(ctx context.Context, videoID string) error {
	s.deleted = append(s.deleted, videoID)
	return nil
}

func (s *stubService) AskQuestion(ctx context.Context, videoID, question string, history []types.ConversationMessage) (*client.AnswerResponse, error) {
	answer := "canned"
	return &client.AnswerResponse{Answer: &answer}, nil
}

func (s *stubService) GenerateSummary(ctx context.Context, videoID string) (*client.SummaryResponse, error) {
	return &client.SummaryResponse{}, nil
}

func (s *stubService) Conversation(ctx context.Context, videoID string) (*client.ConversationResponse, error) {
	return &client.ConversationResponse{}, nil
}

func (s *stubService) ClearConversation(ctx context.Context, videoID string) error {
	return nil
}

func (s *stubService) CheckHealth(ctx context.Context) bool {
	return s.healthy
}

func newTestModel(svc *stubService) Model {
	r := workflow.NewRunner(session.NewStore(), svc)
	return NewModel(context.Background(), r, 0)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// run executes cmd and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = send(t, m, cmd())
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestTabCyclesFocus(t *testing.T) {
	m := newTestModel(&stubService{})
	if m.focus != focusURL || !m.url.Focused() {
		t.Fatal("URL input should start focused")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusLibrary || m.url.Focused() {
		t.Fatalf("focus = %v; want library", m.focus)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusQuestion || !m.question.Focused() {
		t.Fatalf("focus = %v; want question", m.focus)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusURL {
		t.Fatalf("focus should wrap to URL, got %v", m.focus)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusQuestion {
		t.Fatalf("shift+tab should go back, got %v", m.focus)
	}
}

func TestProcessClearsInputOnSuccess(t *testing.T) {
	id, title := "abc123", "Go Concurrency"
	m := newTestModel(&stubService{processResp: &client.ProcessResponse{
		RawVideo: client.RawVideo{VideoID: &id, Title: &title},
	}})

	m = typeText(t, m, "https://youtu.be/abc123")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if m.url.Value() != "" {
		t.Fatalf("URL input = %q; want cleared", m.url.Value())
	}
	view := m.View()
	if !strings.Contains(view, title) {
		t.Fatalf("library should show the processed video:\n%s", view)
	}
	if snap := m.snapshot(); snap.Selection == nil || snap.Selection.ID.Value != id {
		t.Fatalf("processed video should be selected, got %+v", snap.Selection)
	}
}

func TestProcessFailureKeepsInput(t *testing.T) {
	m := newTestModel(&stubService{processErr: &client.TransportError{Message: "Service unreachable"}})

	m = typeText(t, m, "https://youtu.be/abc123")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if m.url.Value() != "https://youtu.be/abc123" {
		t.Fatalf("URL input = %q; want kept after failure", m.url.Value())
	}
	if !strings.Contains(m.View(), "Service unreachable") {
		t.Fatalf("failure should be rendered:\n%s", m.View())
	}
}

func TestLibraryKeys(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(svc)
	store := m.runner.Store()
	for _, id := range []string{"a", "b", "c"} {
		_ = store.AddVideo(types.Video{ID: types.ServerID(id), Title: "Video " + id})
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d; want clamped to 2", m.cursor)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = run(t, m, cmd)
	if snap := m.snapshot(); snap.Selection == nil || snap.Selection.ID.Value != "b" {
		t.Fatalf("selection = %+v; want b", snap.Selection)
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = run(t, m, cmd)
	if len(svc.deleted) != 1 || svc.deleted[0] != "b" {
		t.Fatalf("deleted = %v; want [b]", svc.deleted)
	}
	if len(m.snapshot().Library) != 2 {
		t.Fatal("deleted video should leave the library")
	}
}

func TestShortcutsAreTextInInputs(t *testing.T) {
	m := newTestModel(&stubService{})
	m = typeText(t, m, "x")
	if m.url.Value() != "x" {
		t.Fatalf("typing in the URL input should not trigger shortcuts, got %q", m.url.Value())
	}
}

func TestAskWithoutSelectionShowsMessage(t *testing.T) {
	m := newTestModel(&stubService{})
	m.setFocus(focusQuestion)
	m = typeText(t, m, "what?")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if m.question.Value() != "what?" {
		t.Fatal("rejected question should stay in the input")
	}
	if !strings.Contains(m.View(), workflow.MsgNoSelectionAsk) {
		t.Fatalf("missing selection message:\n%s", m.View())
	}
}

func TestHealthUpdatesHeader(t *testing.T) {
	m := newTestModel(&stubService{})
	m, _ = send(t, m, HealthMsg{Healthy: false})
	if !strings.Contains(m.View(), TextDisconnected) {
		t.Fatal("header should show the service as unreachable")
	}
	m, _ = send(t, m, HealthMsg{Healthy: true})
	if !strings.Contains(m.View(), TextConnected) {
		t.Fatal("header should show the service as connected")
	}

	_, cmd := send(t, m, HealthTickMsg{})
	if cmd == nil {
		t.Fatal("tick should schedule the next probe")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(&stubService{})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Fatal("view should be empty after quitting")
	}
}
