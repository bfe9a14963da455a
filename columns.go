package grid

// ColumnType is a closed set of column type tags.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnLongText
	ColumnNumber
	ColumnDate
	ColumnSingleSelect
	ColumnMultipleSelect
	ColumnCheckbox
	ColumnRate
	ColumnURL
	ColumnEmail
	ColumnCollaborator
	ColumnTags
	ColumnFileName
	ColumnCreatedTime
	ColumnModifiedTime
	ColumnCreator
	ColumnLastModifier
	columnTypeCount
)

var columnTypeNames = [columnTypeCount]string{
	ColumnText:           "text",
	ColumnLongText:       "long-text",
	ColumnNumber:         "number",
	ColumnDate:           "date",
	ColumnSingleSelect:   "single-select",
	ColumnMultipleSelect: "multiple-select",
	ColumnCheckbox:       "checkbox",
	ColumnRate:           "rate",
	ColumnURL:            "url",
	ColumnEmail:          "email",
	ColumnCollaborator:   "collaborator",
	ColumnTags:           "tags",
	ColumnFileName:       "file-name",
	ColumnCreatedTime:    "ctime",
	ColumnModifiedTime:   "mtime",
	ColumnCreator:        "creator",
	ColumnLastModifier:   "last-modifier",
}

func (t ColumnType) String() string {
	if t < 0 || t >= columnTypeCount {
		return "unknown"
	}
	return columnTypeNames[t]
}

// ParseColumnType maps a type name back to its tag. Unknown names are text.
func ParseColumnType(name string) ColumnType {
	for i, n := range columnTypeNames {
		if n == name {
			return ColumnType(i)
		}
	}
	return ColumnText
}

// Column describes one column of the grid.
type Column struct {
	Key      string
	Name     string
	Type     ColumnType
	Width    float32
	Frozen   bool // Pinned to the left edge; only a leading run counts
	Editable bool // Column-level edit switch, ANDed with the type capability
}

// Activation is the user gesture asking for an editor.
type Activation int

const (
	ActivationSingle Activation = iota // Single click on an already selectable cell
	ActivationDouble                   // Double click or Enter
)

func (a Activation) String() string {
	if a == ActivationDouble {
		return "double"
	}
	return "single"
}

// columnCapability is one row of the capability lookup table.
type columnCapability struct {
	DirectEdit       bool // Editor may open on a single activation
	EditableViaClick bool // Editor may open on a double activation
	ReadOnly         bool // System-maintained values
}

var columnCapabilities = [columnTypeCount]columnCapability{
	ColumnText:           {EditableViaClick: true},
	ColumnLongText:       {EditableViaClick: true},
	ColumnNumber:         {EditableViaClick: true},
	ColumnDate:           {DirectEdit: true, EditableViaClick: true},
	ColumnSingleSelect:   {DirectEdit: true, EditableViaClick: true},
	ColumnMultipleSelect: {DirectEdit: true, EditableViaClick: true},
	ColumnCheckbox:       {DirectEdit: true, EditableViaClick: true},
	ColumnRate:           {DirectEdit: true, EditableViaClick: true},
	ColumnURL:            {EditableViaClick: true},
	ColumnEmail:          {EditableViaClick: true},
	ColumnCollaborator:   {DirectEdit: true, EditableViaClick: true},
	ColumnTags:           {DirectEdit: true, EditableViaClick: true},
	ColumnFileName:       {EditableViaClick: true},
	ColumnCreatedTime:    {ReadOnly: true},
	ColumnModifiedTime:   {ReadOnly: true},
	ColumnCreator:        {ReadOnly: true},
	ColumnLastModifier:   {ReadOnly: true},
}

func capabilityOf(t ColumnType) columnCapability {
	if t < 0 || t >= columnTypeCount {
		return columnCapability{ReadOnly: true}
	}
	return columnCapabilities[t]
}

// ReadOnly reports whether values of this type are system-maintained.
func (t ColumnType) ReadOnly() bool { return capabilityOf(t).ReadOnly }

// PermissionFunc reports whether the caller may modify rec.
type PermissionFunc func(rec Record) bool

// CanOpenEditor reports whether an editor may open on a cell of col holding
// rec for the given activation. A nil permission means read-only access.
func CanOpenEditor(col Column, rec Record, canModify PermissionFunc, trigger Activation) bool {
	capability := capabilityOf(col.Type)
	if capability.ReadOnly || !col.Editable || rec == nil || canModify == nil {
		return false
	}
	switch trigger {
	case ActivationSingle:
		if !capability.DirectEdit {
			return false
		}
	case ActivationDouble:
		if !capability.EditableViaClick {
			return false
		}
	default:
		return false
	}
	return canModify(rec)
}
