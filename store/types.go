package store

// BranchRow is one row yielded by AllBranches.
type BranchRow struct {
	Branch               string
	Parent               string
	HasParent            bool
	ParentTurn, ParentTick int
	EndTurn, EndTick     int
}

// TurnRow is one row yielded by TurnsDump.
type TurnRow struct {
	Branch      string
	Turn        int
	EndTick     int
	PlanEndTick int
}

// GraphRow is one row yielded by GraphsTypes. Kind matches
// engine.Kind's int encoding (Graph=0, DiGraph=1, MultiGraph=2,
// MultiDiGraph=3); store does not import engine to avoid a cycle, so
// the two are kept in step by convention only.
type GraphRow struct {
	Graph string
	Kind  int
}

// NodeRow is one history row yielded by NodesDump.
type NodeRow struct {
	Graph, Node, Branch string
	Turn, Tick          int
	Present             bool
}

// EdgeRow is one history row yielded by EdgesDump.
type EdgeRow struct {
	Graph, Orig, Dest, Branch string
	Index                     int
	Turn, Tick                int
	Present                   bool
}

// GraphValRow is one history row yielded by GraphValDump. Value is the
// MessagePack encoding of the attribute's value; Deleted is true when
// the row records an explicit deletion, in which case Value is empty.
type GraphValRow struct {
	Graph, Key, Branch string
	Turn, Tick         int
	Value              []byte
	Deleted            bool
}

// NodeValRow is one history row yielded by NodeValDump.
type NodeValRow struct {
	Graph, Node, Key, Branch string
	Turn, Tick               int
	Value                    []byte
	Deleted                  bool
}

// EdgeValRow is one history row yielded by EdgeValDump.
type EdgeValRow struct {
	Graph, Orig, Dest, Key, Branch string
	Index                          int
	Turn, Tick                     int
	Value                          []byte
	Deleted                        bool
}

// Gateway is the persistence gateway contract from §6. All write
// methods may buffer until Commit; the gateway must not reorder writes
// within a branch past their tick ordering.
type Gateway interface {
	GlobalGet(key string) ([]byte, bool, error)
	GlobalSet(key string, value []byte) error
	GlobalDel(key string) error

	AllBranches() ([]BranchRow, error)
	TurnsDump() ([]TurnRow, error)
	NewBranch(branchName, parent string, turn, tick int) error
	RecordTurnEnd(branchName string, turn, endTick, planEndTick int) error

	GraphsTypes() ([]GraphRow, error)
	RecordGraphType(graphName string, kind int) error

	NodesDump() ([]NodeRow, error)
	EdgesDump() ([]EdgeRow, error)
	GraphValDump() ([]GraphValRow, error)
	NodeValDump() ([]NodeValRow, error)
	EdgeValDump() ([]EdgeValRow, error)

	ExistNode(graph, node, branchName string, turn, tick int, present bool) error
	ExistEdge(graph, orig, dest string, index int, branchName string, turn, tick int, present bool) error
	GraphValSet(graph, key, branchName string, turn, tick int, value []byte, deleted bool) error
	NodeValSet(graph, node, key, branchName string, turn, tick int, value []byte, deleted bool) error
	EdgeValSet(graph, orig, dest string, index int, key, branchName string, turn, tick int, value []byte, deleted bool) error

	// Commit flushes every buffered write in one transaction.
	Commit() error

	// Close releases the underlying connection.
	Close() error
}
