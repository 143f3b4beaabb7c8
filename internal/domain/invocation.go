package domain

// ToolName identifies the editing operation that triggered the hook.
type ToolName string

const (
	ToolEdit      ToolName = "Edit"
	ToolWrite     ToolName = "Write"
	ToolMultiEdit ToolName = "MultiEdit"
	ToolOther     ToolName = "Other"
)

// ParseToolName maps a host tool name onto the known set. Anything that is not
// an editing tool collapses to ToolOther.
func ParseToolName(name string) ToolName {
	switch ToolName(name) {
	case ToolEdit, ToolWrite, ToolMultiEdit:
		return ToolName(name)
	default:
		return ToolOther
	}
}

// IsEditing reports whether the tool writes files.
func (t ToolName) IsEditing() bool {
	return t == ToolEdit || t == ToolWrite || t == ToolMultiEdit
}

// Invocation is the immutable input of a single hook call.
type Invocation struct {
	Tool     ToolName `json:"tool_name"`
	FilePath string   `json:"file_path,omitempty"`
}

// NeedsValidation reports whether the invocation carries a written file.
func (i Invocation) NeedsValidation() bool {
	return i.Tool.IsEditing() && i.FilePath != ""
}
