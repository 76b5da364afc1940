package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/shotredact/internal/cache"
	"github.com/redactyl/shotredact/internal/git"
	"github.com/redactyl/shotredact/internal/types"
)

type RunRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	RunID     string          `json:"run_id"`
	Dir       string          `json:"dir"`
	Git       git.Metadata    `json:"git,omitzero"`
	Mode      string          `json:"mode"`
	DryRun    bool            `json:"dry_run,omitempty"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Skipped   int             `json:"skipped"`
	Duration  string          `json:"duration"`
	Failures  []FailedFile    `json:"failures,omitempty"`
	Files     []FileRedaction `json:"files,omitempty"`
}

type FailedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

type FileRedaction struct {
	File    string   `json:"file"`
	Applied []string `json:"applied"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(dir string) *AuditLog {
	state := cache.StateDir(dir)
	logPath := filepath.Join(state, ".shotredact_audit.jsonl")
	if filepath.Base(state) == ".git" {
		logPath = filepath.Join(state, "shotredact_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns the recorded runs, newest first.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}

	// owner-only: the log names the files that held secrets
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateRunRecord summarises a batch run. Placeholder text and box
// coordinates are not stored, only labels.
func CreateRunRecord(sum types.Summary, mode string, dryRun bool) RunRecord {
	rec := RunRecord{
		Timestamp: time.Now(),
		Dir:       sum.Dir,
		Git:       git.RepoMetadata(sum.Dir),
		Mode:      mode,
		DryRun:    dryRun,
		Total:     sum.Total,
		Succeeded: sum.Succeeded,
		Duration:  sum.Duration.String(),
	}
	for _, r := range sum.Results {
		switch {
		case !r.OK:
			reason := r.Reason
			if r.Error != "" {
				reason = r.Error
			}
			rec.Failures = append(rec.Failures, FailedFile{File: r.File, Reason: reason})
		case r.Skipped:
			rec.Skipped++
		default:
			rec.Files = append(rec.Files, FileRedaction{File: r.File, Applied: r.Applied})
		}
	}
	return rec
}
