package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	texerrors "github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/internal/cli"
)

func TestReportPrintsUserMessage(t *testing.T) {
	var logs, out bytes.Buffer
	c := cli.New(&logs, cli.LogDebug)
	err := texerrors.Wrap(texerrors.ErrCodeInvalidInput, os.ErrNotExist, "reading doc.log")

	if code := report(err, c, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := out.String(); got != "reading doc.log: file does not exist\n" {
		t.Fatalf("unexpected message %q", got)
	}
	if strings.Contains(out.String(), "INVALID_INPUT") {
		t.Fatalf("code prefix should not reach the user: %q", out.String())
	}
	if !strings.Contains(logs.String(), "INVALID_INPUT") {
		t.Fatalf("expected code in debug log, got %q", logs.String())
	}
}

func TestReportCanceled(t *testing.T) {
	var logs, out bytes.Buffer
	c := cli.New(&logs, cli.LogInfo)
	if code := report(fmt.Errorf("watch: %w", context.Canceled), c, &out); code != 130 {
		t.Fatalf("exit code = %d, want 130", code)
	}
	if out.Len() != 0 {
		t.Fatalf("cancellation should be silent, got %q", out.String())
	}
}
