// Package export implements the download and clipboard surfaces. Failures
// never retry: the payload is dumped to the log and the caller gets a notice
// to show.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/olivierh59500/microsims/internal/logutil"
)

// Result is what a sketch shows the user after an export attempt.
type Result struct {
	OK      bool
	Message string
}

// Exporter writes files into Dir and text to the system clipboard.
type Exporter struct {
	Dir string
	Log *logutil.Logger

	// replaceable in tests
	writeFile func(name string, data []byte, perm os.FileMode) error
	readFile  func(name string) ([]byte, error)
	copyText  func(text string) error
}

// New returns an Exporter rooted at dir.
func New(dir string, log *logutil.Logger) *Exporter {
	if log == nil {
		log = logutil.Discard
	}
	e := &Exporter{Dir: dir, Log: log, writeFile: os.WriteFile, readFile: os.ReadFile, copyText: clipboard.WriteAll}
	if clipboard.Unsupported {
		e.copyText = unsupported
	}
	return e
}

func (e *Exporter) dir() string {
	if e.Dir == "" {
		return "."
	}
	return e.Dir
}

// Download saves data as name inside the export directory.
func (e *Exporter) Download(name string, data []byte) Result {
	dir := e.dir()
	path := filepath.Join(dir, filepath.Base(name))
	err := os.MkdirAll(dir, 0755)
	if err == nil {
		err = e.writeFile(path, data, 0644)
	}
	if err != nil {
		e.Log.Error("download %s: %v", path, err)
		e.Log.Dump("contents of "+name, string(data))
		return Result{Message: "Download failed, contents written to the log"}
	}
	e.Log.Info("wrote %s (%d bytes)", path, len(data))
	return Result{OK: true, Message: fmt.Sprintf("Saved %s", path)}
}

// Open reads back a file previously written by Download.
func (e *Exporter) Open(name string) ([]byte, error) {
	path := filepath.Join(e.dir(), filepath.Base(name))
	data, err := e.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return data, nil
}

// Copy places text on the clipboard.
func (e *Exporter) Copy(text string) Result {
	if err := e.copyText(text); err != nil {
		e.Log.Error("clipboard: %v", err)
		e.Log.Dump("clipboard contents", text)
		return Result{Message: "Copy failed, report written to the log"}
	}
	return Result{OK: true, Message: "Copied to clipboard"}
}

func unsupported(string) error { return errors.New("no clipboard utility available") }
