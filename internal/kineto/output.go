package kineto

import (
	"path/filepath"
	"strconv"
	"strings"
)

// OutputFile returns the trace path the daemon produces for one matched
// process: the configured log file with "_<pid>" inserted before the
// extension. A path without an extension gets the suffix appended.
func OutputFile(logFile string, pid int64) string {
	ext := filepath.Ext(logFile)
	return strings.TrimSuffix(logFile, ext) + "_" + strconv.FormatInt(pid, 10) + ext
}
