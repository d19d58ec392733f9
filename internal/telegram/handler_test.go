package telegram

import (
	"context"
	"strings"
	"testing"

	"taskbot/internal/app"
)

type fakeService struct {
	createFn   func(ctx context.Context, ownerID int64, text string) (string, error)
	showFn     func(ctx context.Context, ownerID int64, filter string) (string, error)
	completeFn func(ctx context.Context, ownerID int64, arg string) (string, error)
	deleteFn   func(ctx context.Context, ownerID int64, arg string) (string, error)
	editFn     func(ctx context.Context, ownerID int64, numberArg, field, value string) (string, error)
	undoFn     func(ctx context.Context, ownerID int64) (string, error)
}

func (f *fakeService) Create(ctx context.Context, ownerID int64, text string) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, ownerID, text)
	}
	return "", nil
}
func (f *fakeService) Show(ctx context.Context, ownerID int64, filter string) (string, error) {
	if f.showFn != nil {
		return f.showFn(ctx, ownerID, filter)
	}
	return "", nil
}
func (f *fakeService) Complete(ctx context.Context, ownerID int64, arg string) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, ownerID, arg)
	}
	return "", nil
}
func (f *fakeService) Delete(ctx context.Context, ownerID int64, arg string) (string, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, ownerID, arg)
	}
	return "", nil
}
func (f *fakeService) Edit(ctx context.Context, ownerID int64, numberArg, field, value string) (string, error) {
	if f.editFn != nil {
		return f.editFn(ctx, ownerID, numberArg, field, value)
	}
	return "", nil
}
func (f *fakeService) Undo(ctx context.Context, ownerID int64) (string, error) {
	if f.undoFn != nil {
		return f.undoFn(ctx, ownerID)
	}
	return "", nil
}

type fakeSender struct {
	chatIDs []int64
	sent    []string
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string) error {
	f.chatIDs = append(f.chatIDs, chatID)
	f.sent = append(f.sent, text)
	return nil
}

func textUpdate(ownerID, chatID int64, text string) Update {
	return Update{Message: &Message{From: &User{ID: ownerID}, Chat: Chat{ID: chatID}, Text: text}}
}

func TestHandlePlainTextCreatesTask(t *testing.T) {
	var gotOwner int64
	var gotText string
	service := &fakeService{createFn: func(_ context.Context, ownerID int64, text string) (string, error) {
		gotOwner, gotText = ownerID, text
		return "✅ *#1* hecho", nil
	}}
	sender := &fakeSender{}
	h := NewHandler(service, sender)

	h.HandleUpdate(context.Background(), textUpdate(42, 100, "Lavar ropa |pU2"))

	if gotOwner != 42 || gotText != "Lavar ropa |pU2" {
		t.Errorf("create called with owner=%d text=%q", gotOwner, gotText)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "✅ *#1* hecho" {
		t.Errorf("unexpected replies %v", sender.sent)
	}
	if sender.chatIDs[0] != 100 {
		t.Errorf("reply went to chat %d", sender.chatIDs[0])
	}
}

func TestHandleCommandDispatch(t *testing.T) {
	var gotFilter, gotDone string
	service := &fakeService{
		showFn: func(_ context.Context, _ int64, filter string) (string, error) {
			gotFilter = filter
			return "listado", nil
		},
		completeFn: func(_ context.Context, _ int64, arg string) (string, error) {
			gotDone = arg
			return "ok", nil
		},
	}
	sender := &fakeSender{}
	h := NewHandler(service, sender)
	ctx := context.Background()

	h.HandleUpdate(ctx, textUpdate(1, 1, "/show @FGR"))
	if gotFilter != "@FGR" {
		t.Errorf("show filter = %q", gotFilter)
	}

	h.HandleUpdate(ctx, textUpdate(1, 1, "/done 3"))
	if gotDone != "3" {
		t.Errorf("done arg = %q", gotDone)
	}
}

func TestHandleCommandWithBotSuffix(t *testing.T) {
	called := false
	service := &fakeService{undoFn: func(context.Context, int64) (string, error) {
		called = true
		return "↩️", nil
	}}
	h := NewHandler(service, &fakeSender{})

	h.HandleUpdate(context.Background(), textUpdate(1, 1, "/undo@MiTaskBot"))
	if !called {
		t.Error("undo not dispatched for /undo@MiTaskBot")
	}
}

func TestHandleEditArgSplitting(t *testing.T) {
	var number, field, value string
	service := &fakeService{editFn: func(_ context.Context, _ int64, n, f, v string) (string, error) {
		number, field, value = n, f, v
		return "ok", nil
	}}
	h := NewHandler(service, &fakeSender{})

	h.HandleUpdate(context.Background(), textUpdate(1, 1, "/edit 3 title Nuevo título largo"))
	if number != "3" || field != "title" || value != "Nuevo título largo" {
		t.Errorf("edit args = %q %q %q", number, field, value)
	}
}

func TestHandleEditUsageReply(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(&fakeService{}, sender)

	h.HandleUpdate(context.Background(), textUpdate(1, 1, "/edit 3 title"))
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "Uso: `/edit ID campo valor`") {
		t.Errorf("expected usage reply, got %v", sender.sent)
	}
}

func TestHandleDomainErrorBecomesReply(t *testing.T) {
	service := &fakeService{completeFn: func(context.Context, int64, string) (string, error) {
		return "", &app.DomainError{Code: "NOT_FOUND", Message: "❌ Tarea #9 no encontrada."}
	}}
	sender := &fakeSender{}
	h := NewHandler(service, sender)

	h.HandleUpdate(context.Background(), textUpdate(1, 1, "/done 9"))
	if len(sender.sent) != 1 || sender.sent[0] != "❌ Tarea #9 no encontrada." {
		t.Errorf("unexpected replies %v", sender.sent)
	}
}

func TestHandleUnknownCommandIgnored(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(&fakeService{}, sender)

	h.HandleUpdate(context.Background(), textUpdate(1, 1, "/banana"))
	if len(sender.sent) != 0 {
		t.Errorf("unexpected replies %v", sender.sent)
	}
}

func TestHandleIgnoresNonMessageUpdates(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(&fakeService{}, sender)

	h.HandleUpdate(context.Background(), Update{})
	h.HandleUpdate(context.Background(), Update{Message: &Message{Chat: Chat{ID: 1}}})
	if len(sender.sent) != 0 {
		t.Errorf("unexpected replies %v", sender.sent)
	}
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in      string
		command string
		args    string
	}{
		{"/show", "show", ""},
		{"/show @FGR", "show", "@FGR"},
		{"/SHOW p Sellout", "show", "p Sellout"},
		{"/edit@MiBot 1 tag CS", "edit", "1 tag CS"},
	}
	for _, tc := range cases {
		command, args := splitCommand(tc.in)
		if command != tc.command || args != tc.args {
			t.Errorf("splitCommand(%q) = %q, %q", tc.in, command, args)
		}
	}
}
