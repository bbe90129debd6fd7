package session

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"vidqa/types"
)

func video(id string) types.Video {
	return types.Video{ID: types.ServerID(id), Title: "Video " + id}
}

func mustSelect(t *testing.T, s *Store, id types.VideoID) Token {
	t.Helper()
	if err := s.SetSelection(id); err != nil {
		t.Fatalf("select %s: %v", id, err)
	}
	tok, ok := s.Selection()
	if !ok {
		t.Fatalf("expected selection after selecting %s", id)
	}
	return tok
}

func TestAddVideoNeverDuplicatesIDs(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	s := NewStore()

	for i := 0; i < 500; i++ {
		id := fmt.Sprintf("v%d", rnd.Intn(20))
		v := video(id)
		v.Title = fmt.Sprintf("write %d", i)
		if err := s.AddVideo(v); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}

		seen := make(map[types.VideoID]bool)
		for _, existing := range s.Snapshot().Library {
			if seen[existing.ID] {
				t.Fatalf("duplicate id %s after %d writes", existing.ID, i+1)
			}
			seen[existing.ID] = true
		}

		got, ok := s.Video(v.ID)
		if !ok || got.Title != v.Title {
			t.Fatalf("last write for %s not visible: %+v", id, got)
		}
	}
}

func TestAddVideoReplacesInPlace(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		_ = s.AddVideo(video(id))
	}
	replacement := video("b")
	replacement.Title = "updated"
	_ = s.AddVideo(replacement)

	lib := s.Snapshot().Library
	if len(lib) != 3 || lib[1].ID.Value != "b" || lib[1].Title != "updated" {
		t.Fatalf("unexpected library: %+v", lib)
	}
}

func TestAddVideoRejectsEmptyID(t *testing.T) {
	s := NewStore()
	if err := s.AddVideo(types.Video{Title: "no id"}); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo, got %v", err)
	}
}

func TestRemoveSelectedVideoClearsSelection(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	_ = s.AddVideo(video("b"))
	tok := mustSelect(t, s, types.ServerID("a"))
	if err := s.SetAnswer(tok, types.Answer{VideoID: "a", Text: "x"}); err != nil {
		t.Fatalf("set answer: %v", err)
	}

	if !s.RemoveVideo(types.ServerID("a")) {
		t.Fatal("expected removal")
	}

	snap := s.Snapshot()
	if snap.Selection != nil {
		t.Fatalf("selection should be nil, got %+v", snap.Selection)
	}
	if snap.Answer != nil {
		t.Fatal("answer for removed selection should be cleared")
	}
	if _, ok := s.Selection(); ok {
		t.Fatal("Selection() should report no selection")
	}
}

func TestRemoveOtherVideoKeepsSelection(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	_ = s.AddVideo(video("b"))
	before := mustSelect(t, s, types.ServerID("a"))

	s.RemoveVideo(types.ServerID("b"))

	after, ok := s.Selection()
	if !ok || after != before {
		t.Fatalf("selection changed: before %+v after %+v", before, after)
	}
	if s.RemoveVideo(types.ServerID("missing")) {
		t.Fatal("removing an unknown id should report false")
	}
}

func TestSetSelectionUnknownVideo(t *testing.T) {
	s := NewStore()
	if err := s.SetSelection(types.ServerID("nope")); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo, got %v", err)
	}
}

func TestSwitchingSelectionClearsResults(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	_ = s.AddVideo(video("b"))
	tok := mustSelect(t, s, types.ServerID("a"))
	_ = s.SetAnswer(tok, types.Answer{VideoID: "a", Question: "q", Text: "x"})
	_ = s.SetSummary(tok, types.Summary{VideoID: "a", Text: "sum"})

	mustSelect(t, s, types.ServerID("a"))
	if s.Snapshot().Answer == nil {
		t.Fatal("reselecting the same video must keep its answer")
	}

	mustSelect(t, s, types.ServerID("b"))
	snap := s.Snapshot()
	if snap.Answer != nil || snap.Summary != nil || len(snap.Conversation) != 0 {
		t.Fatalf("results of previous selection leaked: %+v", snap)
	}
}

func TestStaleTokenIsRejected(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	_ = s.AddVideo(video("b"))

	tokA := mustSelect(t, s, types.ServerID("a"))
	mustSelect(t, s, types.ServerID("b"))
	if err := s.SetAnswer(tokA, types.Answer{VideoID: "a"}); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale after switching away, got %v", err)
	}

	// switching back does not revive a token from the earlier selection
	mustSelect(t, s, types.ServerID("a"))
	if err := s.SetSummary(tokA, types.Summary{VideoID: "a"}); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for old epoch, got %v", err)
	}
	if err := s.SetConversation(tokA, nil); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for conversation, got %v", err)
	}
	if s.Snapshot().Summary != nil {
		t.Fatal("stale summary must not be committed")
	}
}

func TestSetAnswerRecordsConversationTurn(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	tok := mustSelect(t, s, types.ServerID("a"))

	_ = s.SetAnswer(tok, types.Answer{VideoID: "a", Question: "q1", Text: "a1"})
	_ = s.SetAnswer(tok, types.Answer{VideoID: "a", Question: "q2", Text: "a2"})

	conv := s.Conversation()
	if len(conv) != 4 || conv[2].Content != "q2" || conv[3].Role != types.RoleAssistant {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
	if s.Snapshot().Answer.Text != "a2" {
		t.Fatal("second answer should replace the first")
	}
}

func TestReplaceLibrary(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("old"))
	mustSelect(t, s, types.ServerID("old"))

	first := video("a")
	dup := video("a")
	dup.Title = "last"
	s.ReplaceLibrary([]types.Video{first, video("b"), dup, {Title: "no id"}})

	snap := s.Snapshot()
	if len(snap.Library) != 2 {
		t.Fatalf("library = %+v; want 2 entries", snap.Library)
	}
	if snap.Library[0].ID.Value != "a" || snap.Library[0].Title != "last" {
		t.Fatalf("duplicate should collapse onto first position with last data: %+v", snap.Library[0])
	}
	if snap.Selection != nil {
		t.Fatal("selection of a video missing from the new library must be cleared")
	}

	mustSelect(t, s, types.ServerID("b"))
	s.ReplaceLibrary([]types.Video{video("b")})
	if snap := s.Snapshot(); snap.Selection == nil || snap.Selection.ID.Value != "b" {
		t.Fatal("selection present in the new library must survive")
	}
}

func TestProvisionalVideoIsReconciled(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("first"))

	provisional := types.Video{ID: types.NewProvisionalID(), SourceURL: "https://youtube.com/watch?v=abc"}
	_ = s.AddVideo(provisional)
	mustSelect(t, s, provisional.ID)

	confirmed := types.Video{ID: types.ServerID("abc"), SourceURL: provisional.SourceURL, Title: "Real"}
	_ = s.AddVideo(confirmed)

	snap := s.Snapshot()
	if len(snap.Library) != 2 {
		t.Fatalf("library = %+v; want provisional entry replaced", snap.Library)
	}
	if snap.Library[1].ID != confirmed.ID {
		t.Fatalf("position 1 = %+v; want confirmed video", snap.Library[1])
	}
	if snap.Selection == nil || snap.Selection.ID != confirmed.ID {
		t.Fatalf("selection should follow the reconciled id, got %+v", snap.Selection)
	}
}

func TestBeginAllowsOnePendingPerSlot(t *testing.T) {
	s := NewStore()
	if !s.Begin(types.WorkflowSummarize, "") {
		t.Fatal("first begin should succeed")
	}
	if s.Begin(types.WorkflowSummarize, "") {
		t.Fatal("second begin on the same slot should fail")
	}
	if !s.Begin(types.WorkflowAsk, "") {
		t.Fatal("other workflows are independent slots")
	}
	if !s.Begin(types.WorkflowDelete, "a") || !s.Begin(types.WorkflowDelete, "b") {
		t.Fatal("deletes of different videos are independent slots")
	}
	if !s.Busy() || !s.Pending(types.WorkflowSummarize, "") {
		t.Fatal("store should report busy")
	}

	s.End(types.WorkflowSummarize, "")
	s.End(types.WorkflowAsk, "")
	s.End(types.WorkflowDelete, "a")
	s.End(types.WorkflowDelete, "b")
	if s.Busy() {
		t.Fatal("store should be idle after all slots end")
	}
	if !s.Begin(types.WorkflowSummarize, "") {
		t.Fatal("slot should be reusable after End")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	tok := mustSelect(t, s, types.ServerID("a"))
	_ = s.SetAnswer(tok, types.Answer{VideoID: "a", Sources: []types.SourceCitation{{Label: "Reference"}}})
	s.SetStatus(types.WorkflowAsk, types.Succeeded("ok"))

	snap := s.Snapshot()
	snap.Library[0].Title = "mutated"
	snap.Answer.Sources[0].Label = "mutated"
	snap.Statuses[types.WorkflowAsk] = types.Failed("mutated")

	again := s.Snapshot()
	if again.Library[0].Title == "mutated" || again.Answer.Sources[0].Label == "mutated" {
		t.Fatal("snapshot mutation leaked into the store")
	}
	if again.Status(types.WorkflowAsk).Phase != types.PhaseSucceeded {
		t.Fatal("status mutation leaked into the store")
	}
	if again.Status(types.WorkflowExport).Phase != types.PhaseIdle {
		t.Fatal("unset workflow should report idle")
	}
}

func TestLogRingBuffer(t *testing.T) {
	s := NewStore()
	for i := 0; i < defaultMaxLogs+10; i++ {
		s.AddLog(fmt.Sprintf("entry %d", i))
	}
	logs := s.Snapshot().Logs
	if len(logs) != defaultMaxLogs {
		t.Fatalf("kept %d logs; want %d", len(logs), defaultMaxLogs)
	}
	if logs[0].Message != "entry 10" {
		t.Fatalf("oldest kept entry = %q", logs[0].Message)
	}
}

func TestReplaceLibrarySinceKeepsLocalChanges(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("a"))
	_ = s.AddVideo(video("b"))
	mustSelect(t, s, types.ServerID("b"))

	since := s.LibraryVersion()
	s.RemoveVideo(types.ServerID("b"))
	local := video("c")
	local.Title = "local"
	_ = s.AddVideo(local)

	listed := video("c")
	listed.Title = "listed"
	s.ReplaceLibrarySince(since, []types.Video{video("a"), video("b"), listed, video("d")})

	snap := s.Snapshot()
	var ids []string
	for _, v := range snap.Library {
		ids = append(ids, v.ID.Value)
	}
	if fmt.Sprint(ids) != "[a c d]" {
		t.Fatalf("library = %v; want [a c d]", ids)
	}
	if snap.Library[1].Title != "local" {
		t.Fatalf("video added after the request should keep local data, got %q", snap.Library[1].Title)
	}
	if snap.Selection != nil {
		t.Fatal("selection of the removed video must stay cleared")
	}

	// changes older than the last list no longer override the server
	s.ReplaceLibrarySince(s.LibraryVersion(), []types.Video{video("b")})
	if snap := s.Snapshot(); len(snap.Library) != 1 || snap.Library[0].ID.Value != "b" {
		t.Fatalf("library = %+v; want only b", snap.Library)
	}
}

func TestAddAndSelect(t *testing.T) {
	s := NewStore()
	_ = s.AddVideo(video("first"))
	mustSelect(t, s, types.ServerID("first"))

	if err := s.AddAndSelect(types.Video{}); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("zero id: got %v, want ErrUnknownVideo", err)
	}

	provisional := types.Video{ID: types.NewProvisionalID(), SourceURL: "https://youtube.com/watch?v=abc"}
	if err := s.AddAndSelect(provisional); err != nil {
		t.Fatalf("add provisional: %v", err)
	}
	if snap := s.Snapshot(); snap.Selection == nil || snap.Selection.ID != provisional.ID {
		t.Fatalf("new video should be selected, got %+v", snap.Selection)
	}

	confirmed := types.Video{ID: types.ServerID("abc"), SourceURL: provisional.SourceURL, Title: "Real"}
	if err := s.AddAndSelect(confirmed); err != nil {
		t.Fatalf("add confirmed: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Library) != 2 || snap.Library[1].ID != confirmed.ID {
		t.Fatalf("library = %+v; want provisional entry replaced", snap.Library)
	}
	if snap.Selection == nil || snap.Selection.ID != confirmed.ID {
		t.Fatalf("selection = %+v; want confirmed video", snap.Selection)
	}
}
