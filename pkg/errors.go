package edep

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

// TrackIndexError is returned when a parent or contributor index does not
// refer to a trajectory of the event.
type TrackIndexError struct {
	What    string
	Index   int
	NTracks int
}

func (e *TrackIndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.NTracks)
}

// CycleError is returned when following parent links never reaches a root.
type CycleError struct {
	TrackID int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parent chain of track %d is cyclic", e.TrackID)
}

// StreamMismatchError is returned when two correlated input streams
// (e.g. edep-sim events and GENIE records) have different lengths.
type StreamMismatchError struct {
	Stream1 string
	Count1  int
	Stream2 string
	Count2  int
}

func (e *StreamMismatchError) Error() string {
	return fmt.Sprintf("number of entries do not match: %s has %d, %s has %d",
		e.Stream1, e.Count1, e.Stream2, e.Count2)
}

// DomainError flags an input a response model cannot convert. The deposit
// is skipped for charge and light but the event goes on.
type DomainError struct {
	Model  string
	Energy float64
	Length float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s (energy %g, length %g)", e.Model, e.Reason, e.Energy, e.Length)
}
