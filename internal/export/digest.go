package export

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"podpull/internal/logging"
)

// DigestRunner hands a finished export off to an external digest
// command. The command receives the export path and is expected to
// write its result next to outputDir.
type DigestRunner struct {
	Command   string
	OutputDir string
	Logger    *slog.Logger

	// runCommand is replaced in tests.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewDigestRunner builds a runner for the configured digest command.
func NewDigestRunner(command, outputDir string, logger *slog.Logger) *DigestRunner {
	return &DigestRunner{
		Command:   command,
		OutputDir: outputDir,
		Logger:    logger,
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Run invokes the digest command against exportPath and returns the
// path the digest is expected at.
func (r *DigestRunner) Run(ctx context.Context, exportPath string) (string, error) {
	if r.Command == "" {
		return "", fmt.Errorf("digest command not configured")
	}
	args := []string{"digest", exportPath, "-o", r.OutputDir, "--delimiter=---"}
	r.logger().Info("running digest command",
		logging.String("command", r.Command),
		logging.String("export_path", exportPath))
	output, err := r.runCommand(ctx, r.Command, args...)
	if err != nil {
		return "", fmt.Errorf("digest command failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return r.DigestPath(exportPath), nil
}

// DigestPath derives where the digest command writes its result for a
// given export file.
func (r *DigestRunner) DigestPath(exportPath string) string {
	base := strings.TrimSuffix(filepath.Base(exportPath), filepath.Ext(exportPath))
	return filepath.Join(r.OutputDir, base+"_digest.txt")
}

func (r *DigestRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.NewNop()
}
