// Package chain runs an ordered list of request steps over a shared
// per-request context, stopping at the first step that fails.
package chain

type Step[C any] func(c *C) error

type Chain[C any] []Step[C]

func New[C any](steps ...Step[C]) Chain[C] { return Chain[C](steps) }

// Run executes the steps in order. Steps after a failing one never run.
func (ch Chain[C]) Run(c *C) error {
	for _, step := range ch {
		if err := step(c); err != nil {
			return err
		}
	}
	return nil
}

// Then returns a copy of the chain with more steps appended.
func (ch Chain[C]) Then(steps ...Step[C]) Chain[C] {
	out := make(Chain[C], 0, len(ch)+len(steps))
	out = append(out, ch...)
	return append(out, steps...)
}
