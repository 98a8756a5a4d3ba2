package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Duplicate(ctx context.Context, args []string) error
	Connect(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  (l)ist [-c <category> | -u]   list connections, optionally by category or uncategorized
  search <text>                 find connections by name, host, user or notes
  show <id> [-p]                show a connection, -p reveals the password
  add                           add a connection
  edit <id>                     edit a connection
  delete <id>                   delete a connection
  dup <id>                      duplicate a connection
  (c)onnect <id>                launch the remote-desktop client
  status [-c <category> | -u]   ping listed connections
  cat list|add|rename|delete    manage categories
  export <file>                 write all connections to a JSON file
  import <file>                 merge connections from a JSON file
  exit | quit                   leave the program`

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a with the remaining tokens. Errors returned by
// handlers are printed and the loop continues. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("rdp> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "search", "find":
			cmdErr = a.Search(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "dup", "duplicate":
			cmdErr = a.Duplicate(ctx, args)
		case "c", "connect":
			cmdErr = a.Connect(ctx, args)
		case "status", "ping":
			cmdErr = a.Status(ctx, args)
		case "cat", "category":
			cmdErr = a.Category(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "import":
			cmdErr = a.Import(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}
