// Package export writes session data to flat files and manages
// database backups
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/store"
)

var csvHeader = []string{
	"app_name",
	"category",
	"start_time",
	"end_time",
	"duration_seconds",
}

// Exporter reads sessions from the store and writes them to flat
// files. It never writes back through the store.
type Exporter struct {
	db     store.DB
	dbPath string

	now func() time.Time
}

// jsonExport is the envelope written by ExportJSON.
type jsonExport struct {
	ExportDate time.Time         `json:"export_date"`
	Sessions   []session.Session `json:"sessions"`
	Metadata   exportMetadata    `json:"metadata"`
}

type exportMetadata struct {
	TotalSessions int       `json:"total_sessions"`
	RangeStart    time.Time `json:"range_start,omitzero"`
	RangeEnd      time.Time `json:"range_end,omitzero"`
}

// New creates an Exporter for the given store. dbPath is the location
// of the underlying database file, used for backup and restore.
func New(db store.DB, dbPath string) *Exporter {
	return &Exporter{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}
}

// ExportCSV writes the sessions in the given range to a CSV file.
// With anonymize set, app names are replaced by stable App_NNN
// pseudonyms.
func (e *Exporter) ExportCSV(
	outputFile string,
	start, end time.Time,
	anonymize bool,
) error {
	sessions, err := e.db.GetSessionsByDate(start, end)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for i := range sessions {
		sess := sessions[i]

		name := sess.AppName
		if anonymize {
			name = AnonymizeAppName(name)
		}

		var endTime string
		if !sess.EndTime.IsZero() {
			endTime = sess.EndTime.Format(time.RFC3339)
		}

		record := []string{
			name,
			string(sess.Category),
			sess.StartTime.Format(time.RFC3339),
			endTime,
			strconv.FormatInt(int64(sess.Duration.Seconds()), 10),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// ExportJSON writes the sessions in the given range to a JSON file
// wrapped with an export timestamp and range metadata.
func (e *Exporter) ExportJSON(
	outputFile string,
	start, end time.Time,
) error {
	sessions, err := e.db.GetSessionsByDate(start, end)
	if err != nil {
		return err
	}

	export := jsonExport{
		ExportDate: e.now(),
		Sessions:   sessions,
		Metadata: exportMetadata{
			TotalSessions: len(sessions),
			RangeStart:    start,
			RangeEnd:      end,
		},
	}

	return writeJSON(outputFile, export)
}

// ExportSummary writes an arbitrary report value as indented JSON.
func (e *Exporter) ExportSummary(outputFile string, summary any) error {
	return writeJSON(outputFile, summary)
}

// BackupDatabase copies the database file to backupPath.
func (e *Exporter) BackupDatabase(backupPath string) error {
	if err := os.MkdirAll(filepath.Dir(backupPath), 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	return copyFile(e.dbPath, backupPath)
}

// RestoreDatabase overwrites the database file with the backup at
// backupPath. The store must be closed before restoring.
func (e *Exporter) RestoreDatabase(backupPath string) error {
	if err := os.MkdirAll(filepath.Dir(e.dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	return copyFile(backupPath, e.dbPath)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

// AnonymizeAppName maps an application name to a stable App_NNN
// pseudonym. The same name always yields the same pseudonym within
// and across exports.
func AnonymizeAppName(appName string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appName))

	return fmt.Sprintf("App_%03d", h.Sum32()%1000)
}

func writeJSON(outputFile string, v any) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, append(b, '\n'), 0o644)
}
