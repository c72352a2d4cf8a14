// Package envelope builds structured response envelopes through a fluent,
// chainable Builder and flattens them into plain maps ready for encoding.
//
// The builder trusts its caller: no setter validates input, and Add may
// overwrite any named field with a value of any type. Values that cannot be
// encoded only fail later, when the map produced by ToMap is handed to an
// encoder.
package envelope

// Keys of the named envelope fields.
const (
	KeyStatus   = "status"
	KeySuccess  = "success"
	KeyMessage  = "message"
	KeyType     = "type"
	KeyAction   = "action"
	KeyMetadata = "metadata"
	KeyData     = "data"
)

// DefaultStatus is the status of a freshly constructed builder.
const DefaultStatus = 200

// Builder accumulates envelope fields. Every setter returns the receiver so
// calls can be chained. A Builder is meant for a single owner and is not safe
// for concurrent mutation.
type Builder struct {
	fields  map[string]any
	payload any
}

// New returns a builder with status 200, success true and an empty message.
func New() *Builder {
	return &Builder{fields: map[string]any{
		KeyStatus:  DefaultStatus,
		KeySuccess: true,
		KeyMessage: "",
	}}
}

// For returns a new builder carrying payload. The payload's exported fields
// are read each time the builder is serialized and surface under the data key.
func For(payload any) *Builder {
	b := New()
	b.payload = payload
	return b
}

// IsSuccessStatus reports whether code falls in the success range [200, 210).
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 210
}

// Status sets the status code and derives success from it.
func (b *Builder) Status(code int) *Builder {
	b.fields[KeyStatus] = code
	b.fields[KeySuccess] = IsSuccessStatus(code)
	return b
}

// Success overwrites the success flag. A later call to Status derives it again,
// so call Success after Status to override.
func (b *Builder) Success(ok bool) *Builder {
	b.fields[KeySuccess] = ok
	return b
}

func (b *Builder) Message(msg string) *Builder {
	b.fields[KeyMessage] = msg
	return b
}

func (b *Builder) Type(t string) *Builder {
	b.fields[KeyType] = t
	return b
}

func (b *Builder) Action(name string) *Builder {
	b.fields[KeyAction] = name
	return b
}

// Metadata replaces the metadata value. Nothing is merged.
func (b *Builder) Metadata(data any) *Builder {
	b.fields[KeyMetadata] = data
	return b
}

// Add sets an arbitrary key. It is the unchecked extension point: a key that
// matches a named field (status, success, ...) silently replaces it with value,
// whatever its type.
func (b *Builder) Add(key string, value any) *Builder {
	b.fields[key] = value
	return b
}

// ToMap returns a new map holding a shallow copy of every envelope field plus
// a data entry. data is itself a fresh map: the envelope fields again, with the
// payload's fields laid over them. Non-object payloads are attached to data
// unchanged. ToMap does not modify the builder.
func (b *Builder) ToMap() map[string]any {
	out := b.copyFields()
	out[KeyData] = b.dataView()
	return out
}

// Callback serializes b and passes the result to fn.
func Callback[R any](b *Builder, fn func(map[string]any) R) R {
	return fn(b.ToMap())
}

func (b *Builder) copyFields() map[string]any {
	out := make(map[string]any, len(b.fields)+1)
	for k, v := range b.fields {
		out[k] = v
	}
	return out
}

func (b *Builder) dataView() any {
	if b.payload == nil {
		return b.copyFields()
	}
	attrs, ok := payloadFields(b.payload)
	if !ok {
		return b.payload
	}
	data := b.copyFields()
	for k, v := range attrs {
		data[k] = v
	}
	return data
}
