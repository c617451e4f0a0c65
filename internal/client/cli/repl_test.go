package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	signedIn bool
	calls    []string
	failSync bool
}

func (f *fakeExec) record(call string, args ...string) {
	f.calls = append(f.calls, strings.TrimSpace(call+" "+strings.Join(args, "|")))
}

func (f *fakeExec) isSignedIn() bool { return f.signedIn }
func (f *fakeExec) Add(_ context.Context, c, text string) error {
	f.record("add", c, text)
	return nil
}
func (f *fakeExec) Edit(_ context.Context, id, text string) error {
	f.record("edit", id, text)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, id string) error { f.record("delete", id); return nil }
func (f *fakeExec) List(_ context.Context, c string) error    { f.record("list", c); return nil }
func (f *fakeExec) Show(_ context.Context, id string) error   { f.record("show", id); return nil }
func (f *fakeExec) Sync(context.Context) error {
	f.record("sync")
	if f.failSync {
		return errors.New("boom")
	}
	return nil
}
func (f *fakeExec) Status(context.Context) error { f.record("status"); return nil }
func (f *fakeExec) SignIn(_ context.Context, tok string) error {
	f.record("signin", tok)
	f.signedIn = true
	return nil
}
func (f *fakeExec) SignOut(context.Context) error {
	f.record("signout")
	f.signedIn = false
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"signin tok",
		"add notes buy  milk",
		"edit e1 new text",
		"l",
		"list notes",
		"show e1",
		"delete e1",
		"sync",
		"status",
		"signout",
		"exit",
		"add never reached",
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, strings.NewReader(input), false)

	assert.Equal(t, []string{
		"signin tok",
		"add notes|buy milk",
		"edit e1|new text",
		"list",
		"list notes",
		"show e1",
		"delete e1",
		"sync",
		"status",
		"signout",
	}, f.calls)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := captureOutput(t)

	input := "add notes\nedit e1\ndelete\nshow\nsignin\nfrobnicate\n\n"
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, strings.NewReader(input), false)

	assert.Empty(t, f.calls)
	assert.Equal(t, []string{
		"Usage: add <collection> <text>",
		"Usage: edit <id> <text>",
		"Usage: delete <id>",
		"Usage: show <id>",
		"Usage: signin <token>",
		"Unknown command:frobnicate",
	}, *out)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, strings.NewReader("help\nsignin t\nhelp\n"), false)

	require.Len(t, *out, 2)
	assert.Equal(t, helpSignedOut, (*out)[0])
	assert.Equal(t, helpSignedIn, (*out)[1])
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	out := captureOutput(t)

	f := &fakeExec{failSync: true}
	runREPL(context.Background(), f, func() string { return "" }, strings.NewReader("sync\nstatus\n"), false)

	assert.Equal(t, []string{"sync", "status"}, f.calls)
	assert.Equal(t, []string{"Error:boom"}, *out)
}

func TestRunREPL_PromptOnlyWhenInteractive(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(x)" }, strings.NewReader("status\n"), true)

	assert.Equal(t, []string{"es (x)> ", "es (x)> "}, *out)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakeExec{}
	runREPL(ctx, f, func() string { return "" }, strings.NewReader("status\n"), false)
	assert.Empty(t, f.calls)
}
