package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/forge-dev/forge/pkg/telemetry/schema"
	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
)

// ControlStore is the config store as used by the telemetry subcommands.
type ControlStore interface {
	Store
	Delete(key string) error
}

// StatusReport is what `forge telemetry status` shows.
type StatusReport struct {
	Status     Status
	InformedAt *time.Time
	// Device is the last device report date, nil if never sent.
	Device *string
	// Projects maps project directories to their last report date.
	Projects map[string]string
}

// GetStatus reads the stored telemetry value.
func GetStatus(r schema.Reader) StatusReport {
	value := schema.Load(r)
	report := StatusReport{Status: statusOf(value), Projects: map[string]string{}}
	if value.State != types.Configured || value.Record == nil {
		return report
	}

	report.InformedAt = value.Record.InformedAt
	report.Device = value.Record.Device.LastSentDate
	for path, project := range value.Record.Projects {
		if project != nil {
			report.Projects[path] = project.LastSentDate
		}
	}
	return report
}

// Enable clears an opt-out. Telemetry goes back to uninitialized, so the
// disclosure is shown again before anything is sent. Enabling when not
// opted out changes nothing.
func Enable(s ControlStore) error {
	if schema.Load(s).State != types.OptedOut {
		return nil
	}
	if err := s.Delete(schema.Key); err != nil {
		return fmt.Errorf("enabling telemetry: %w", err)
	}
	return nil
}

// Disable opts out. The stored record is replaced by false.
func Disable(s ControlStore) error {
	if err := s.Set(schema.Key, false); err != nil {
		return fmt.Errorf("disabling telemetry: %w", err)
	}
	return nil
}

// Reset forgets all telemetry state, including an opt-out.
func Reset(s ControlStore) error {
	if err := s.Delete(schema.Key); err != nil {
		return fmt.Errorf("resetting telemetry: %w", err)
	}
	return nil
}

// Inform prints the disclosure and records that it was shown. An opted-out
// user only sees the notice.
func Inform(s ControlStore, w io.Writer, now time.Time) error {
	PrintDisclosure(w)

	value := schema.Load(s)
	if value.State == types.OptedOut {
		return nil
	}

	record := value.RecordOrDefault()
	informedAt := now.UTC()
	record.InformedAt = &informedAt
	if err := s.Set(schema.Key, record); err != nil {
		return fmt.Errorf("saving disclosure date: %w", err)
	}
	return nil
}
