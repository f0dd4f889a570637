// Package gcloud wraps the gcloud commands used to provision a BYOC
// deployment.
package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner executes a gcloud command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the gcloud binary as a child process.
type ExecRunner struct {
	// Binary is the gcloud executable. Defaults to "gcloud".
	Binary string
	Logger *zap.Logger
}

// Run executes gcloud with args. Standard error is captured separately so
// that JSON written to standard output stays parseable.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "gcloud"
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	output, err := cmd.Output()
	logger.Debug("gcloud",
		zap.Strings("args", args),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w\n%s", bin, strings.Join(args, " "), err, stderr.Bytes())
	}

	return bytes.TrimSpace(output), nil
}
