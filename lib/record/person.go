package record

import (
	"strconv"
)

// --------------------------------------------------------------------------
// Payload constants
// --------------------------------------------------------------------------

const (
	// PersonID is the id of every generated record
	PersonID int32 = 1
	// PersonName is the name of every generated record
	PersonName = "My Playground!!!"
	// TagCount is the number of tags (0..TagCount-1) attached to every record
	TagCount = 20
	// LogContentPrefix is prepended to the index of each log entry
	LogContentPrefix = "Log Contents..."
	// LogTimesBase is the timestamp of the first log entry
	LogTimesBase int64 = 10000000
)

// --------------------------------------------------------------------------
// Record Structure
// --------------------------------------------------------------------------

// Log is a single log entry of a Person
type Log struct {
	ID      int32  `json:"id" msgpack:"id"`
	Content string `json:"content" msgpack:"content"`
	Status  int32  `json:"status" msgpack:"status"`
	Times   int64  `json:"times" msgpack:"times"`
}

// Person is the benchmark payload
type Person struct {
	ID   int32   `json:"id" msgpack:"id"`
	Name string  `json:"name" msgpack:"name"`
	Tags []int32 `json:"tags" msgpack:"tags"`
	Logs []Log   `json:"logs" msgpack:"logs"`
}

// NewPerson builds the fixed benchmark record with logAmount log entries.
// A negative logAmount is treated as zero.
func NewPerson(logAmount int) Person {
	if logAmount < 0 {
		logAmount = 0
	}

	tags := make([]int32, TagCount)
	for i := range tags {
		tags[i] = int32(i)
	}

	logs := make([]Log, logAmount)
	for i := range logs {
		logs[i] = Log{
			ID:      int32(i),
			Content: LogContentPrefix + strconv.Itoa(i),
			Status:  int32(i % 2),
			Times:   LogTimesBase + int64(i),
		}
	}

	return Person{
		ID:   PersonID,
		Name: PersonName,
		Tags: tags,
		Logs: logs,
	}
}

// Equal reports whether a and b hold the same data.
// Nil and empty slices compare equal.
func Equal(a, b Person) bool {
	if a.ID != b.ID || a.Name != b.Name {
		return false
	}
	if len(a.Tags) != len(b.Tags) || len(a.Logs) != len(b.Logs) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	for i := range a.Logs {
		if a.Logs[i] != b.Logs[i] {
			return false
		}
	}
	return true
}
