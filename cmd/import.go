package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/mfimport/internal/adapters/mediafire"
	"github.com/bnema/mfimport/internal/adapters/render/outcome"
	"github.com/bnema/mfimport/internal/application"
	"github.com/bnema/mfimport/internal/domain"
)

var errImportAborted = errors.New("import aborted")

const maxLineBytes = 64 * 1024

type importOptions struct {
	credentials credentialOptions
	private     bool
	asJSON      bool
}

func newImportCmd(app *app) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import files listed as filename;size;sha256 lines or share links",
		Long: "Each input line is either \"<filename>;<size>;<sha256>\" or a MediaFire share link. " +
			"Lines are read from the given files, or from stdin when no file (or \"-\") is given.",
		Example: "  mfi import --email me@example.com list.txt\n  cat links.txt | mfi import --access-token TOKEN --private",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, app, opts, args)
		},
	}

	bindCredentialFlags(cmd, &opts.credentials)
	cmd.Flags().BoolVar(&opts.private, "private", false, "Mark every imported file private")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render the import report as JSON")

	return cmd
}

func runImport(cmd *cobra.Command, app *app, opts *importOptions, args []string) error {
	lines, err := readLines(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	creds, err := opts.credentials.resolve(cmd)
	if err != nil {
		return err
	}

	client, service, err := app.session()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := login(cmd, client, creds, opts.asJSON); err != nil {
		return err
	}

	var sink application.OutcomeSink
	if !opts.asJSON {
		out := cmd.OutOrStdout()
		sink = func(o domain.ImportOutcome) {
			_, _ = fmt.Fprintln(out, outcome.Line(o))
		}
	}

	report, runErr := service.Run(cmd.Context(), application.ImportCommand{
		Lines:       lines,
		MarkPrivate: opts.private,
	}, sink)

	if opts.asJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		rendered, err := outcome.Report(report)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.Aborted {
		return errImportAborted
	}
	return nil
}

func login(cmd *cobra.Command, client *mediafire.Client, creds domain.Credentials, quiet bool) error {
	task := func(ctx context.Context) error {
		return client.Login(ctx, creds)
	}
	if quiet {
		return task(cmd.Context())
	}
	return runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in to MediaFire...", poolStatus(client.Dispatcher()), task)
}

// poolStatus reports how far the v2 token pool has been filled.
func poolStatus(d *mediafire.Dispatcher) taskStatus {
	return func() string {
		if d.TokenVersion() < 2 {
			return ""
		}
		pool := d.Pool()
		if pool.Len() == 0 {
			return ""
		}
		return fmt.Sprintf("%d/%d session tokens", pool.Len(), pool.Capacity())
	}
}

// readLines collects input lines from every named file in order, or from
// stdin when there are none. "-" names stdin.
func readLines(stdin io.Reader, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var lines []string
	for _, path := range paths {
		var err error
		if path == "-" {
			lines, err = scanLines(lines, stdin, "stdin")
		} else {
			lines, err = scanFile(lines, path)
		}
		if err != nil {
			return nil, err
		}
	}

	return lines, nil
}

func scanFile(lines []string, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return scanLines(lines, f, path)
}

func scanLines(lines []string, r io.Reader, name string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input %s: %w", name, err)
	}
	return lines, nil
}
