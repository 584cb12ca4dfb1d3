// Package plan models staging work as an ordered list of filesystem
// operations. Planning is pure with respect to mutation: it reads the
// source tree but changes nothing; execution is pkg/executor's job.
package plan

// OperationType identifies what an operation does.
type OperationType string

const (
	OperationCreateDir  OperationType = "create_dir"
	OperationCopyFile   OperationType = "copy_file"
	OperationWriteFile  OperationType = "write_file"
	OperationDeleteFile OperationType = "delete_file"
	OperationDeleteDir  OperationType = "delete_dir"
)

// Operation is a single filesystem step.
type Operation struct {
	Type OperationType

	// Source is the absolute origin path for copy operations.
	Source string

	// Target is the absolute path the operation acts on.
	Target string

	// Content is the payload for write operations.
	Content string

	// Description is a human-readable summary for logs and dry runs.
	Description string
}

// Plan is an ordered operation list plus the bookkeeping the receipt
// needs.
type Plan struct {
	Operations []Operation

	// Files holds install-root-relative paths of files the plan
	// stages, in order.
	Files []string

	// Dirs holds install-root-relative paths of directories the plan
	// creates, outermost first.
	Dirs []string
}
