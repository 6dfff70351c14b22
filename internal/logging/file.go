package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap/zapcore"
)

// fileSink is a timestamped log file for one command
type fileSink struct {
	zapcore.WriteSyncer
	file *os.File
}

func (s *fileSink) Close() error {
	return s.file.Close()
}

// openFileSink creates <dir>/<name>-<timestamp>.log and prunes that
// command's older files down to maxFiles. Other commands' files in the
// same directory are left alone.
func openFileSink(dir, name string, maxFiles int) (*fileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name,
		time.Now().Format("2006-01-02T15-04-05.000")))

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := pruneLogFiles(dir, name, maxFiles); err != nil {
		// Logging still works with extra files around
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old logs: %v\n", err)
	}

	return &fileSink{WriteSyncer: zapcore.AddSync(f), file: f}, nil
}

// pruneLogFiles keeps the newest maxFiles files of one command
func pruneLogFiles(dir, name string, maxFiles int) error {
	files, err := filepath.Glob(filepath.Join(dir, name+"-*.log"))
	if err != nil {
		return err
	}
	if len(files) <= maxFiles {
		return nil
	}

	// Timestamped names sort chronologically
	sort.Strings(files)

	for _, f := range files[:len(files)-maxFiles] {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("remove %s: %w", f, err)
		}
	}
	return nil
}
