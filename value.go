package tinyscript

// Value is the integer type the interpreter computes with. It is wide
// enough to also carry opaque handles (such as tslib list handles) in
// the same slot a variable would use; builtins and procedures are held
// in their own Symbol fields, not in a Value.
type Value = int64

// StringView is a (length, pointer) view into some byte range: script
// text, an arena-duplicated copy, or a host-provided constant. It is
// never null-terminated and compares equal by content, matching
// spec.md's data model. A Go string already is such a view — slicing
// shares the backing array with its source, so no separate pointer
// arithmetic is needed; "duplicating" a StringView (see Arena.Dup)
// just forces a fresh backing array so it outlives the buffer it was
// cut from.
type StringView string

// Empty reports whether the view has zero length.
func (sv StringView) Empty() bool { return len(sv) == 0 }
