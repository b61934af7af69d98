package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Reports []reportSchema `toml:"reports"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type reportSchema struct {
	ID          string          `toml:"id"`
	StartedAt   string          `toml:"started_at"`
	FinishedAt  string          `toml:"finished_at"`
	MarkPrivate bool            `toml:"mark_private"`
	Skipped     int             `toml:"skipped"`
	Aborted     bool            `toml:"aborted"`
	Outcomes    []outcomeSchema `toml:"outcomes,omitempty"`
}

type outcomeSchema struct {
	Kind       string `toml:"kind"`
	Line       int    `toml:"line"`
	Identifier string `toml:"identifier"`
	Filename   string `toml:"filename,omitempty"`
	Message    string `toml:"message,omitempty"`
	Link       string `toml:"link,omitempty"`
}
