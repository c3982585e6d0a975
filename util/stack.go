package util

// Stack is a LIFO used for screen history.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop takes the top item off. An empty stack yields the zero value.
func (s *Stack[T]) Pop() (item T) {
	n := len(s.items)
	if n == 0 {
		return
	}
	item, s.items = s.items[n-1], s.items[:n-1]
	return
}

// Peek is Pop without the removal.
func (s *Stack[T]) Peek() (item T) {
	if n := len(s.items); n > 0 {
		item = s.items[n-1]
	}
	return
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Clear() {
	s.items = nil
}
