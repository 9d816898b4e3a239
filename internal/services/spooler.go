package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultPrintCommand sends a document to the default CUPS queue on 140x76mm stock
var DefaultPrintCommand = []string{"lp", "-o", "media=Custom.140x76mm", "-o", "fit-to-page"}

// DirectorySpooler writes each document to <dir>/<name>.pdf
type DirectorySpooler struct {
	dir string
}

// NewDirectorySpooler creates a spooler writing into dir, creating it if needed
func NewDirectorySpooler(dir string) (*DirectorySpooler, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("spool directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}
	return &DirectorySpooler{dir: dir}, nil
}

// Spool writes the document atomically so a watcher never sees a partial file
func (s *DirectorySpooler) Spool(ctx context.Context, name string, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.dir, sanitizeFileName(name)+".pdf")
	tmp, err := os.CreateTemp(s.dir, ".spool-*")
	if err != nil {
		return fmt.Errorf("spool %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(document); err != nil {
		tmp.Close()
		return fmt.Errorf("spool %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("spool %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("spool %s: %w", name, err)
	}
	return nil
}

// Path returns where a document with the given name is written
func (s *DirectorySpooler) Path(name string) string {
	return filepath.Join(s.dir, sanitizeFileName(name)+".pdf")
}

// CommandSpooler pipes each document to the stdin of a print command
type CommandSpooler struct {
	command []string
	logger  *zap.Logger
}

// NewCommandSpooler creates a spooler running command for every document
func NewCommandSpooler(command []string, logger *zap.Logger) (*CommandSpooler, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, fmt.Errorf("print command is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandSpooler{
		command: append([]string(nil), command...),
		logger:  logger,
	}, nil
}

// Spool runs the print command with the document on stdin
func (s *CommandSpooler) Spool(ctx context.Context, name string, document []byte) error {
	cmd := exec.CommandContext(ctx, s.command[0], s.command[1:]...)
	cmd.Env = append(os.Environ(), "TICKET_ID="+name)
	cmd.Stdin = bytes.NewReader(document)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("print %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}

	s.logger.Debug("print job submitted",
		zap.String("ticket_id", name),
		zap.String("command", s.command[0]),
		zap.String("output", strings.TrimSpace(string(out))),
	)
	return nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
