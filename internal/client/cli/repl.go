package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	GoToPage(ctx context.Context, page string) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, key string) error
	Show(ctx context.Context, ref string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Reload(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist             show the current page
  (n)ext, (p)rev     move between pages
  page <k>           jump to page k
  search [text]      filter by text; no text clears the filter
  sort <key>         none, item or class
  show <ref>         show one entry (row number on the page, or id)
  add                create an entry
  edit <ref>         edit an entry
  delete <ref>       delete an entry (asks for confirmation)
  reload             fetch the list again
  exit | quit        leave the program`

// runREPL starts a simple read–eval–print loop for the catalog CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
//
// The same reader serves the prompts inside commands, so it is not wrapped
// in a bufio.Scanner.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("scp %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "n", "next":
			_ = a.NextPage(ctx)

		case "p", "prev":
			_ = a.PrevPage(ctx)

		case "page":
			_ = a.GoToPage(ctx, arg)

		case "search":
			_ = a.Search(ctx, arg)

		case "sort":
			_ = a.Sort(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "reload":
			_ = a.Reload(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
