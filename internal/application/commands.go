package application

// ImportCommand is one bulk-import run over raw input lines.
type ImportCommand struct {
	Lines       []string
	MarkPrivate bool
}
