package settings

// MemorySink is a FieldSink kept in memory, it is what the command line edits and persists.
type MemorySink map[Field]string

func NewMemorySink() MemorySink {
	sink := MemorySink{}
	for _, f := range Fields {
		sink[f] = ""
	}
	return sink
}

func (s MemorySink) Get(field Field) string {
	return s[field]
}

func (s MemorySink) Set(field Field, value string) {
	s[field] = value
}
