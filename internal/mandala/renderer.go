package mandala

// Renderer is the drawing surface a Controller drives. Immediate-mode hosts
// typically keep a Store and paint it once per frame.
type Renderer interface {
	CreatePrimitive(id int, shape Shape)
	UpdatePrimitive(id int, attrs Attrs)
	RemoveAll()
}

// Store is a retained primitive table in creation order. It implements
// Renderer and is embedded by the concrete renderers.
type Store struct {
	order  []int
	shapes map[int]Shape
	attrs  map[int]Attrs
}

// CreatePrimitive registers id. Re-creating an existing id keeps its slot.
func (s *Store) CreatePrimitive(id int, shape Shape) {
	if s.shapes == nil {
		s.shapes = make(map[int]Shape)
		s.attrs = make(map[int]Attrs)
	}
	if _, ok := s.shapes[id]; !ok {
		s.order = append(s.order, id)
	}
	s.shapes[id] = shape
	s.attrs[id] = Attrs{Shape: shape, Hidden: true}
}

// UpdatePrimitive replaces the display state of id. Unknown ids are ignored.
func (s *Store) UpdatePrimitive(id int, attrs Attrs) {
	shape, ok := s.shapes[id]
	if !ok {
		return
	}
	attrs.Shape = shape
	s.attrs[id] = attrs
}

// RemoveAll forgets every primitive.
func (s *Store) RemoveAll() {
	s.order = s.order[:0]
	s.shapes = nil
	s.attrs = nil
}

// Len returns the number of registered primitives.
func (s *Store) Len() int { return len(s.order) }

// Attrs returns the current display state of id.
func (s *Store) Attrs(id int) (Attrs, bool) {
	a, ok := s.attrs[id]
	return a, ok
}

// Each visits visible primitives in creation order.
func (s *Store) Each(fn func(id int, a Attrs)) {
	for _, id := range s.order {
		a := s.attrs[id]
		if a.Hidden {
			continue
		}
		fn(id, a)
	}
}
