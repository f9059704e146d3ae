package engine

// NewGraph registers a fresh graph named graphName of the given kind.
// It fails with ErrGraphNameError if graphName collides with a
// reserved name or an already-registered graph.
func (e *Engine) NewGraph(graphName string, kind Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.IllegalGraphNames[graphName] {
		return ErrGraphNameError
	}
	if _, exists := e.graphKinds[graphName]; exists {
		return ErrGraphNameError
	}
	if err := e.gw.RecordGraphType(graphName, int(kind)); err != nil {
		return err
	}
	e.graphKinds[graphName] = kind
	return nil
}

// GraphKind returns the kind graphName was registered with, and
// whether graphName is known at all.
func (e *Engine) GraphKind(graphName string) (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	k, ok := e.graphKinds[graphName]
	return k, ok
}

// Graphs returns every registered graph's name.
func (e *Engine) Graphs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.graphKinds))
	for name := range e.graphKinds {
		out = append(out, name)
	}
	return out
}
