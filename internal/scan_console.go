package internal

import (
	"context"
	"fmt"
	"io"
	"rollcall/internal/providers"
	"rollcall/internal/scanner"
	"rollcall/internal/services"
	"rollcall/internal/structures"
)

// ScanConsole drives one scan session from a keyboard-wedge scanner: every
// line on the input is one decoded code.
type ScanConsole struct {
	flags   *structures.CliFlags
	service services.ScanServiceInterface
	logger  providers.Logger
}

func NewScanConsole(flags *structures.CliFlags, service services.ScanServiceInterface, logger providers.Logger) *ScanConsole {
	return &ScanConsole{flags: flags, service: service, logger: logger}
}

// Run reads codes until EOF, then sends the collected set unless this is a
// dry run.
func (sc *ScanConsole) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	id, session, err := sc.service.Open(sc.flags.Track, sc.flags.Day)
	if err != nil {
		return err
	}
	defer sc.service.Close(id)

	_, _ = fmt.Fprintf(out, "Scanning for %s, day %d. End input to send.\n", session.Track, session.Day)

	err = sc.service.Feed(ctx, id, scanner.LineSurface(ctx, in), func(det scanner.Detection, outcome scanner.Outcome) {
		switch {
		case det.Err != nil:
			_, _ = fmt.Fprintf(out, "read error: %s\n", det.Err)
		case outcome == scanner.Empty:
		default:
			_, _ = fmt.Fprintf(out, "%-12s %s\n", outcome, det.Text)
		}
	})
	if err != nil {
		return err
	}

	codes := session.Dedup.Collected()
	if sc.flags.DryRun {
		_, _ = fmt.Fprintf(out, "Dry run: %d barcodes collected, nothing sent\n", len(codes))
		for _, code := range codes {
			_, _ = fmt.Fprintln(out, code)
		}
		return nil
	}

	n, err := sc.service.Send(ctx, id)
	if err != nil {
		sc.logger.Errorf(providers.TypeScan, "Console send failed: %s", err)
		return fmt.Errorf("send barcodes: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Sent %d barcodes\n", n)
	return nil
}
