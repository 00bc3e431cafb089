package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pamnard/TaroBot/internal/llm"
	"github.com/pamnard/TaroBot/internal/session"
)

// fakeCompleter replays scripted replies and records each transcript it saw.
type fakeCompleter struct {
	replies     []string
	failAt      int // 1-based call index that fails; 0 means never
	calls       int
	transcripts [][]llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.calls++
	snapshot := make([]llm.Message, len(messages))
	copy(snapshot, messages)
	f.transcripts = append(f.transcripts, snapshot)
	if f.failAt != 0 && f.calls == f.failAt {
		return "", errors.New("upstream status 500")
	}
	if f.calls > len(f.replies) {
		return fmt.Sprintf("reply %d", f.calls), nil
	}
	return f.replies[f.calls-1], nil
}

type fixedRNG struct {
	seq []int
	pos int
}

func (r *fixedRNG) Intn(n int) int {
	v := r.seq[r.pos%len(r.seq)] % n
	r.pos++
	return v
}

func newTestService(t *testing.T, completer llm.Completer) (*Service, *session.Sessions) {
	t.Helper()
	store := session.NewMemoryStore()
	t.Cleanup(store.Close)
	sessions := session.NewSessions(store, 0)
	svc := NewService(Options{
		Sessions:  sessions,
		Completer: completer,
		RNG:       &fixedRNG{seq: []int{3, 17, 42}},
	})
	return svc, sessions
}

func TestStartWithoutRequestIsRejected(t *testing.T) {
	fake := &fakeCompleter{}
	svc, _ := newTestService(t, fake)

	_, err := svc.Start(context.Background(), 1, 9, "Will I find love?")
	if !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("err = %v, want ErrNoPrompt", err)
	}
	if fake.calls != 0 {
		t.Errorf("completer called %d times without a pending question", fake.calls)
	}
}

func TestStartDeliversFirstEntryAndQueuesRest(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"past text", "present text", "future text", "summary text"}}
	svc, _ := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	first, err := svc.Start(context.Background(), 1, 9, "Will I find love?")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if fake.calls != 4 {
		t.Errorf("completer calls = %d, want 4", fake.calls)
	}
	if first.Card == nil || first.Text != "past text" {
		t.Errorf("first entry = %+v", first)
	}

	// The flag is consumed: a second freeform message is not a question.
	_, err = svc.Start(context.Background(), 1, 9, "again?")
	if !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("second Start err = %v, want ErrNoPrompt", err)
	}
}

func TestStartThreadsOneTranscript(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"r1", "r2", "r3", "r4"}}
	svc, _ := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	if _, err := svc.Start(context.Background(), 1, 9, "What about work?"); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	// Each call sees the full prior exchange: system+user, then +assistant+user.
	wantLens := []int{2, 4, 6, 8}
	for i, tr := range fake.transcripts {
		if len(tr) != wantLens[i] {
			t.Errorf("call %d transcript length = %d, want %d", i+1, len(tr), wantLens[i])
		}
		if tr[0].Role != llm.RoleSystem {
			t.Errorf("call %d transcript does not open with system role", i+1)
		}
	}
	// The second call carries the first reply as an assistant turn.
	if got := fake.transcripts[1][2]; got.Role != llm.RoleAssistant || got.Content != "r1" {
		t.Errorf("assistant turn not threaded: %+v", got)
	}
	// The question appears once, in the first user turn.
	if tr := fake.transcripts[0]; tr[1].Role != llm.RoleUser || !strings.Contains(tr[1].Content, "What about work?") {
		t.Errorf("question missing from opening turn: %+v", tr[1])
	}
}

func TestStartMidChainFailureQueuesNothing(t *testing.T) {
	fake := &fakeCompleter{failAt: 3}
	svc, sessions := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	_, err := svc.Start(context.Background(), 1, 9, "Will it work out?")
	if err == nil {
		t.Fatal("expected error from failed completion")
	}
	if _, ok := sessions.GetRemains(1, 9); ok {
		t.Error("queue persisted despite aborted reading")
	}
	if _, ok := svc.Next(1, 9); ok {
		t.Error("Next returned an entry after an aborted reading")
	}
}

func TestNextStepsThroughQueueInOrder(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"past", "present", "future", "summary"}}
	svc, sessions := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	if _, err := svc.Start(context.Background(), 1, 9, "q"); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	e, ok := svc.Next(1, 9)
	if !ok || e.Text != "present" || e.Card == nil {
		t.Fatalf("first Next = %+v, %v", e, ok)
	}
	e, ok = svc.Next(1, 9)
	if !ok || e.Text != "future" || e.Card == nil {
		t.Fatalf("second Next = %+v, %v", e, ok)
	}
	e, ok = svc.Next(1, 9)
	if !ok || e.Text != "summary" || e.Card != nil {
		t.Fatalf("third Next = %+v, %v", e, ok)
	}
	if _, found := sessions.GetRemains(1, 9); found {
		t.Error("queue key still present after last entry")
	}
	if _, ok := svc.Next(1, 9); ok {
		t.Error("fourth Next should be a silent no-op")
	}
}

func TestNextDropsCorruptQueue(t *testing.T) {
	fake := &fakeCompleter{}
	svc, sessions := newTestService(t, fake)

	sessions.PutRemains(1, 9, []byte("not json"))
	if _, ok := svc.Next(1, 9); ok {
		t.Fatal("corrupt queue yielded an entry")
	}
	if _, found := sessions.GetRemains(1, 9); found {
		t.Error("corrupt queue not dropped")
	}
}

func TestAbandonClearsEverything(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"a", "b", "c", "d"}}
	svc, sessions := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	if _, err := svc.Start(context.Background(), 1, 9, "q"); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	svc.RequestQuestion(1, 9) // leaves an await flag too
	svc.Abandon(1, 9)

	if sessions.ConsumeAwait(1, 9) {
		t.Error("await flag survived Abandon")
	}
	if _, found := sessions.GetRemains(1, 9); found {
		t.Error("queue survived Abandon")
	}
}

func TestRequestQuestionDropsStaleQueue(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"a", "b", "c", "d"}}
	svc, sessions := newTestService(t, fake)

	svc.RequestQuestion(1, 9)
	if _, err := svc.Start(context.Background(), 1, 9, "old question"); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	svc.RequestQuestion(1, 9)
	if _, found := sessions.GetRemains(1, 9); found {
		t.Error("stale queue kept after a new question was requested")
	}
}
