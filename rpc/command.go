// Package rpc is the storage's HTTP control surface: a single verb-dispatched
// command endpoint plus a thin client, sitting directly on top of
// tomstore.Storage[string, string]. It is deliberately not a distributed
// protocol — no shard routing, no cluster membership — just a
// single-process control plane for driving a Storage from outside the Go
// process that owns it, and the counterpart the CLI's "tom" subcommands
// talk to at the address given by --endpoint.
package rpc

// Verb names one storage operation a Command can request.
type Verb string

const (
	VerbCreateTom Verb = "create_tom"
	VerbDeleteTom Verb = "delete_tom"
	VerbMount     Verb = "mount"
	VerbUnmount   Verb = "unmount"
	VerbMounts    Verb = "mounts"
	VerbKey       Verb = "key"
	VerbMapped    Verb = "mapped"
	VerbValue     Verb = "value"
	VerbSetKey    Verb = "set_key"
	VerbSetMapped Verb = "set_mapped"
	VerbSetValue  Verb = "set_value"
	VerbInsert    Verb = "insert"
	VerbRemove    Verb = "remove"
)

// Command is the single request envelope the control surface accepts.
// Which fields are meaningful depends on Verb; unused fields are left at
// their zero value.
type Command struct {
	Verb Verb

	// Mount / Unmount / Mounts
	MountID      string
	TomID        string
	InternalPath string
	Priority     int

	// Key / Mapped / Value / Set* / Insert / Remove
	Path string

	// Set* / Insert
	Key         string
	Mapped      string
	LifetimeSec int64 // 0 means "no lifetime"
	AsNew       bool  // Set* only: use the SetXAsNew variant
}

// KV mirrors tomstore.KV[string, string] over the wire.
type KV struct {
	Key    string
	Mapped string
}

// Result is the single response envelope the control surface returns.
type Result struct {
	Error string

	Bool  bool
	Count int

	Keys    []string
	Mappeds []string
	Values  []KV
	Mounts  []MountInfo
}

// MountInfo mirrors tomstore.MountInfo over the wire.
type MountInfo struct {
	TomID        string
	InternalPath string
}
