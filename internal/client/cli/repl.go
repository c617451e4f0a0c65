package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isSignedIn() bool
	Add(ctx context.Context, collection, text string) error
	Edit(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, collection string) error
	Show(ctx context.Context, id string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	SignIn(ctx context.Context, token string) error
	SignOut(ctx context.Context) error
}

const (
	helpSignedIn  = "Available commands: add <collection> <text>, edit <id> <text>, delete <id>, (l)ist [collection], show <id>, sync, status, signout, exit"
	helpSignedOut = "Available commands: signin <token>, add, edit, delete, list, show, status, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
// The prompt, built by statusFn, is only printed when interactive is set.
// Command errors are reported and the loop goes on; it ends on EOF, on
// "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in io.Reader, interactive bool) {
	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return
		}
		if interactive {
			printlnFn(fmt.Sprintf("es %s> ", statusFn()))
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "add":
			if len(args) < 2 {
				printlnFn("Usage: add <collection> <text>")
				continue
			}
			err = a.Add(ctx, args[0], strings.Join(args[1:], " "))

		case "edit":
			if len(args) < 2 {
				printlnFn("Usage: edit <id> <text>")
				continue
			}
			err = a.Edit(ctx, args[0], strings.Join(args[1:], " "))

		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "l", "list":
			collection := ""
			if len(args) > 0 {
				collection = args[0]
			}
			err = a.List(ctx, collection)

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			err = a.Show(ctx, args[0])

		case "sync":
			err = a.Sync(ctx)

		case "status":
			err = a.Status(ctx)

		case "signin":
			if len(args) != 1 {
				printlnFn("Usage: signin <token>")
				continue
			}
			err = a.SignIn(ctx, args[0])

		case "signout":
			err = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
