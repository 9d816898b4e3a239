package services

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySpooler(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	spooler, err := NewDirectorySpooler(dir)
	require.NoError(t, err)

	require.NoError(t, spooler.Spool(context.Background(), "TIX-1-1", []byte("%PDF-test")))

	content, err := os.ReadFile(filepath.Join(dir, "TIX-1-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-test", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	assert.Equal(t, filepath.Join(dir, "___etc_passwd.pdf"), spooler.Path("../etc/passwd"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, spooler.Spool(ctx, "TIX-1-2", nil), context.Canceled)

	_, err = NewDirectorySpooler(" ")
	assert.Error(t, err)
}

func TestCommandSpooler(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Run("pipes the document to the command", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "printed.pdf")
		spooler, err := NewCommandSpooler([]string{"sh", "-c", `cat > "$0"; echo "$TICKET_ID" >> "$0"`, out}, nil)
		require.NoError(t, err)

		require.NoError(t, spooler.Spool(context.Background(), "TIX-9-1", []byte("%PDF-doc\n")))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-doc\nTIX-9-1\n", string(content))
	})

	t.Run("failing command surfaces stderr", func(t *testing.T) {
		spooler, err := NewCommandSpooler([]string{"sh", "-c", "echo no printer >&2; exit 3"}, nil)
		require.NoError(t, err)

		err = spooler.Spool(context.Background(), "TIX-9-2", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no printer")
	})

	t.Run("requires a command", func(t *testing.T) {
		_, err := NewCommandSpooler(nil, nil)
		assert.Error(t, err)
	})
}

// recordingSpooler keeps spooled documents in memory
type recordingSpooler struct {
	names     []string
	documents [][]byte
	err       error
}

func (s *recordingSpooler) Spool(ctx context.Context, name string, document []byte) error {
	if s.err != nil {
		return s.err
	}
	s.names = append(s.names, name)
	s.documents = append(s.documents, document)
	return nil
}

func TestTicketPrinter_Print(t *testing.T) {
	spooler := &recordingSpooler{}
	printer := NewTicketPrinter(NewQREncoder(DefaultQRSize), nil, spooler, nil)

	ticket := sampleTicket()
	require.NoError(t, printer.Print(context.Background(), ticket))

	require.Len(t, spooler.names, 1)
	assert.Equal(t, ticket.TicketID, spooler.names[0])
	assert.True(t, len(spooler.documents[0]) > 0)

	spooler.err = errors.New("paper jam")
	err := printer.Print(context.Background(), ticket)
	assert.ErrorContains(t, err, "paper jam")
	assert.ErrorContains(t, err, ticket.TicketID)
}
