// Package command turns command-line arguments into a typed extractor command.
package command

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoArgs is returned by ParseArgs when no selector was given.
var ErrNoArgs = errors.New("no selector given")

// ListKeyword selects the record listing instead of an extraction.
const ListKeyword = "list"

// Kind identifies what a Command does.
type Kind int

const (
	KindList Kind = iota
	KindExtractByID
	KindExtractByName
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindExtractByID:
		return "extract-by-id"
	case KindExtractByName:
		return "extract-by-name"
	default:
		return "unknown"
	}
}

// Command is the single value consumed by the dispatcher.
type Command struct {
	Kind     Kind
	ID       int64  // set for KindExtractByID
	Name     string // set for KindExtractByName
	Selector string // token as typed, empty when built directly
}

// List lists every stored record.
func List() Command {
	return Command{Kind: KindList}
}

// ExtractByID extracts the record with the given identifier.
func ExtractByID(id int64) Command {
	return Command{Kind: KindExtractByID, ID: id}
}

// ExtractByName extracts the record with the given filename.
func ExtractByName(name string) Command {
	return Command{Kind: KindExtractByName, Name: name}
}

// String returns the selector exactly as typed, or a canonical form for
// commands built without one.
func (c Command) String() string {
	if c.Selector != "" {
		return c.Selector
	}
	switch c.Kind {
	case KindList:
		return ListKeyword
	case KindExtractByID:
		return strconv.FormatInt(c.ID, 10)
	default:
		return c.Name
	}
}

// FromSelector classifies a selector token. A non-empty run of ASCII digits is
// an identifier; anything else, including a number too large for int64, is a
// filename.
func FromSelector(selector string) Command {
	cmd := ExtractByName(selector)
	if selector == ListKeyword {
		cmd = List()
	} else if isDigits(selector) {
		if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
			cmd = ExtractByID(id)
		}
	}
	cmd.Selector = selector
	return cmd
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Invocation is the parsed command line.
type Invocation struct {
	DBPath  string // explicit store path given positionally, empty if none
	Command Command
}

// ParseArgs disambiguates "[db-path] <selector>". The first of exactly two
// arguments is taken as the store path only when isDatabase accepts it;
// otherwise the first argument is the selector and the rest are ignored.
func ParseArgs(args []string, isDatabase func(string) bool) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, ErrNoArgs
	}
	if len(args) == 2 && isDatabase(args[0]) {
		return Invocation{DBPath: args[0], Command: FromSelector(args[1])}, nil
	}
	return Invocation{Command: FromSelector(args[0])}, nil
}

var databaseExtensions = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// IsDatabaseFile reports whether path is an existing regular file with a
// recognized SQLite extension.
func IsDatabaseFile(path string) bool {
	if !databaseExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
