package cli

import (
	"bufio"
	"context"
	"strings"
)

// Run starts the read-eval-print loop. Every accepted command counts as user
// activity and refreshes the inactivity timestamp, the terminal analogue of
// the browser client's pointer and keyboard listeners.
//
// Anonymous commands: register, login, help, exit.
// Logged-in commands: list [All|Pending|Completed], add, edit <id>,
// done <id>, undo <id>, rm <id>, whoami, refresh, logout, help, exit.
func (a *App) Run(ctx context.Context, scanner *bufio.Scanner) {
	for {
		a.printf("taskhub %s> ", a.status())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if a.session.LoggedIn() {
			_ = a.session.Touch(ctx)
		}

		switch cmd {
		case "help":
			if a.session.LoggedIn() {
				a.printf("Commands: list [All|Pending|Completed], add, edit <id>, done <id>, undo <id>, rm <id>, whoami, refresh, logout, exit\n")
			} else {
				a.printf("Commands: register, login, exit\n")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			_ = a.requireLogin(func() error { return a.List(ctx, filter) })

		case "add":
			_ = a.requireLogin(func() error { return a.Add(ctx) })

		case "edit":
			_ = a.requireLogin(func() error { return a.withID(args, func(id string) error { return a.Edit(ctx, id) }) })

		case "done":
			_ = a.requireLogin(func() error {
				return a.withID(args, func(id string) error { return a.SetStatus(ctx, id, "Completed") })
			})

		case "undo":
			_ = a.requireLogin(func() error {
				return a.withID(args, func(id string) error { return a.SetStatus(ctx, id, "Pending") })
			})

		case "rm":
			_ = a.requireLogin(func() error { return a.withID(args, func(id string) error { return a.Remove(ctx, id) }) })

		case "whoami":
			if user, ok := a.session.User(); ok {
				a.printf("%s\n", user.Email)
			} else {
				a.printf("Not logged in.\n")
			}

		case "refresh":
			_ = a.requireLogin(func() error { return a.RefreshToken(ctx) })

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			a.printf("Bye!\n")
			return

		default:
			a.printf("Unknown command: %s\n", cmd)
		}
	}
}

func (a *App) status() string {
	if user, ok := a.session.User(); ok {
		return user.Email + " "
	}
	return ""
}

func (a *App) requireLogin(fn func() error) error {
	if !a.session.LoggedIn() {
		a.printf("Log in first.\n")
		return nil
	}
	return fn()
}

func (a *App) withID(args []string, fn func(id string) error) error {
	if len(args) == 0 {
		a.printf("Usage: <command> <id>\n")
		return nil
	}
	return fn(args[0])
}
