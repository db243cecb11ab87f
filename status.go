package sqlitego

// Status is a SQLite primary result code.
type Status int

const (
	StatusOK Status = iota
	StatusError
	StatusInternal
	StatusPerm
	StatusAbort
	StatusBusy
	StatusLocked
	StatusNoMem
	StatusReadOnly
	StatusInterrupt
	StatusIOErr
	StatusCorrupt
	StatusNotFound
	StatusFull
	StatusCantOpen
	StatusProtocol
	StatusEmpty
	StatusSchema
	StatusTooBig
	StatusConstraint
	StatusMismatch
	StatusMisuse
	StatusNoLFS
	StatusAuth
	StatusFormat
	StatusRange
	StatusNotADB
	StatusNotice
	StatusWarning
)

const (
	StatusRow  Status = 100
	StatusDone Status = 101
)

var statusNames = map[Status]string{
	StatusOK:         "ok",
	StatusError:      "SQL logic error",
	StatusInternal:   "internal error",
	StatusPerm:       "access permission denied",
	StatusAbort:      "query aborted",
	StatusBusy:       "database is locked",
	StatusLocked:     "database table is locked",
	StatusNoMem:      "out of memory",
	StatusReadOnly:   "attempt to write a readonly database",
	StatusInterrupt:  "interrupted",
	StatusIOErr:      "disk I/O error",
	StatusCorrupt:    "database disk image is malformed",
	StatusNotFound:   "unknown operation",
	StatusFull:       "database or disk is full",
	StatusCantOpen:   "unable to open database file",
	StatusProtocol:   "locking protocol",
	StatusEmpty:      "empty",
	StatusSchema:     "database schema has changed",
	StatusTooBig:     "string or blob too big",
	StatusConstraint: "constraint failed",
	StatusMismatch:   "datatype mismatch",
	StatusMisuse:     "bad parameter or other API misuse",
	StatusNoLFS:      "large file support is disabled",
	StatusAuth:       "authorization denied",
	StatusFormat:     "auxiliary database format error",
	StatusRange:      "column index out of range",
	StatusNotADB:     "file is not a database",
	StatusNotice:     "notification message",
	StatusWarning:    "warning message",
	StatusRow:        "another row available",
	StatusDone:       "no more rows available",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "unknown error"
}

// OK reports whether s is the success sentinel.
func (s Status) OK() bool {
	return s == StatusOK
}

// ExitCode maps err to a process exit status: 0 for nil, otherwise the
// SQLite status, so shell scripts can tell failure classes apart.
func ExitCode(err error) int {
	return int(StatusOf(err))
}
