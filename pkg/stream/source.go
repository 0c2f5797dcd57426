package stream

// ChannelSource adapts an instance channel (such as the one fed by
// StreamCSV) to the Generator interface. Next returns nil once the channel
// is drained and closed.
type ChannelSource struct {
	ch     <-chan *Instance
	schema *Schema
}

// NewChannelSource wraps a channel with its schema.
func NewChannelSource(ch <-chan *Instance, schema *Schema) *ChannelSource {
	return &ChannelSource{ch: ch, schema: schema}
}

func (s *ChannelSource) Schema() *Schema { return s.schema }

func (s *ChannelSource) Next() *Instance {
	inst, ok := <-s.ch
	if !ok {
		return nil
	}
	return inst
}
