package terminal

import "github.com/baaaaaaaka/cmdterm/message"

// Command is a named action the user can run from the command line.
//
// Call receives the tokenized line (the command name first). Complete, when
// set, returns the candidates for the argument being typed; the last element
// of the argument's CommandLine is the partial token under the cursor.
type Command[T any] struct {
	Name        string
	Description string
	Call        func(arg *Argument[T])
	Complete    func(arg *Argument[T]) []string
}

// Argument is what a command sees of the world when it runs or completes.
type Argument[T any] struct {
	Value       *T
	Term        *Terminal[T]
	CommandLine []string
}

// Registry supplies commands and formats the lines the terminal logs on the
// user's behalf. Returned command pointers must stay valid for as long as the
// registry is used by a terminal.
type Registry[T any] interface {
	// FindCommandsByPrefix returns every command whose name starts with
	// prefix.
	FindCommandsByPrefix(prefix string) []*Command[T]
	FindCommandsByPrefixBytes(prefix []byte) []*Command[T]
	ListCommands() []*Command[T]
	// Format turns a raw command line into a log line. Returning false
	// suppresses the line.
	Format(raw string, kind message.Type) (message.Message, bool)
}
