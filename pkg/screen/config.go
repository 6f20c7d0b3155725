package screen

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Config carries the process-wide file locations screens read from. It is
// assembled once at startup and treated as read-only afterwards.
type Config struct {
	// DataDir holds the per-session data payload files.
	DataDir string
	// TestDataDir holds fixture payloads used in debug mode.
	TestDataDir string
	// TestPrefix prepends fixture file names in debug mode.
	TestPrefix string
	// Fields is the filesystem the field definition files live in.
	Fields fs.FS
}

// DataPath derives the payload location for a screen: the session-scoped file
// normally, the fixture file in debug mode.
func (c Config) DataPath(sessionID, code string, debug bool) string {
	if debug {
		return filepath.Join(c.TestDataDir, c.TestPrefix+code+".json")
	}
	return filepath.Join(c.DataDir, sessionID+"-"+code+".json")
}

// FieldsDir is a convenience for configs pointing at an on-disk definitions
// directory.
func FieldsDir(dir string) fs.FS {
	return os.DirFS(dir)
}
