package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Fprintln

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, add, edit [n], delete [n], clear, goal [weight], phone [number], sms on|off, profile, export, logout, exit"
)

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Goal(ctx context.Context, args []string) error
	Phone(ctx context.Context, args []string) error
	SMS(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Export(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done. Handler errors are reported by the handlers themselves; the loop
// only stops on input errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(w, "wt %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				printlnFn(w)
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(w, helpLoggedIn)
			} else {
				printlnFn(w, helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn(w, "Bye!")
			return nil

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if isUserCommand(cmd) {
				printlnFn(w, "Please log in first")
			} else {
				printlnFn(w, "Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "clear":
			_ = a.Clear(ctx)
		case "goal":
			_ = a.Goal(ctx, args)
		case "phone":
			_ = a.Phone(ctx, args)
		case "sms":
			_ = a.SMS(ctx, args)
		case "profile":
			_ = a.Profile(ctx)
		case "export":
			_ = a.Export(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn(w, "Unknown command:", cmd)
		}
	}
}

func isUserCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "add", "edit", "delete", "clear", "goal", "phone", "sms", "profile", "export", "logout":
		return true
	}
	return false
}
