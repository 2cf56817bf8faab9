package engine

// Scene is a flat set of entities plus the environment they are lit by.
// The scene does not own its entities or its environment.
type Scene struct {
	Name          string
	IndirectLight *IndirectLight
	Skybox        *Skybox
	entities      []*Entity
	uidMap        map[uint64]*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		entities: make([]*Entity, 0),
		uidMap:   make(map[uint64]*Entity),
	}
}

// ResourceName implements Resource.
func (s *Scene) ResourceName() string {
	return "scene:" + s.Name
}

// AddEntity adds e. Adding an entity twice is a no-op.
func (s *Scene) AddEntity(e *Entity) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Entity)
	}
	if _, ok := s.uidMap[e.UID]; ok {
		return
	}
	s.entities = append(s.entities, e)
	s.uidMap[e.UID] = e
}

func (s *Scene) AddEntities(list []*Entity) {
	for _, e := range list {
		s.AddEntity(e)
	}
}

// RemoveEntity removes e and every entity below it.
func (s *Scene) RemoveEntity(e *Entity) {
	for _, d := range e.Descendants() {
		if _, ok := s.uidMap[d.UID]; !ok {
			continue
		}
		delete(s.uidMap, d.UID)
		for i, obj := range s.entities {
			if obj == d {
				s.entities = append(s.entities[:i], s.entities[i+1:]...)
				break
			}
		}
	}
}

func (s *Scene) Entities() []*Entity {
	return s.entities
}

func (s *Scene) Len() int {
	return len(s.entities)
}

func (s *Scene) Contains(e *Entity) bool {
	_, ok := s.uidMap[e.UID]
	return ok
}

func (s *Scene) FindByUID(uid uint64) *Entity {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}
