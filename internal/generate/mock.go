package generate

import "context"

// Mock is a test double for the generator.
type Mock struct {
	GenerateFunc func(ctx context.Context, topic string) (string, error)
	Calls        []string
}

// Generate records the call and delegates to GenerateFunc.
func (m *Mock) Generate(ctx context.Context, topic string) (string, error) {
	m.Calls = append(m.Calls, topic)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, topic)
	}
	return "# " + topic + "\n\nmock content\n", nil
}
