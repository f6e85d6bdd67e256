package solver

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fitforge/fitforge/types"
)

// Objective selects what the ILP solver optimises.
type Objective int

const (
	// ObjectiveCoverage maximises assigned teams first, then total benefit.
	ObjectiveCoverage Objective = iota
	// ObjectiveBenefit maximises total benefit only.
	ObjectiveBenefit
)

// String returns the configuration name of the objective.
func (o Objective) String() string {
	switch o {
	case ObjectiveCoverage:
		return "coverage"
	case ObjectiveBenefit:
		return "benefit"
	default:
		return "unknown"
	}
}

// ParseObjective converts a configuration name into an Objective.
// The empty string selects ObjectiveCoverage.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coverage":
		return ObjectiveCoverage, nil
	case "benefit":
		return ObjectiveBenefit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownObjective, s)
	}
}

// costEpsilon absorbs floating point noise when comparing path costs.
const costEpsilon = 1e-9

// ILP implements capacitated optimal assignment.
type ILP struct {
	objective Objective
}

var _ types.Solver = (*ILP)(nil)

// ILPOption configures an ILP solver.
type ILPOption func(*ILP)

// NewILP creates an optimal assignment solver.
//
// Parameters:
//   - opts: Optional configuration (WithObjective)
//
// Returns:
//   - *ILP: Initialized solver using ObjectiveCoverage by default
//
// Example:
//
//	s := solver.NewILP(solver.WithObjective(solver.ObjectiveBenefit))
//	res, err := s.Solve(ctx, req)
func NewILP(opts ...ILPOption) *ILP {
	s := &ILP{objective: ObjectiveCoverage}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithObjective sets the optimisation objective.
func WithObjective(o Objective) ILPOption {
	return func(s *ILP) {
		s.objective = o
	}
}

// Objective returns the configured objective.
func (s *ILP) Objective() Objective {
	return s.objective
}

// Solve computes an optimal assignment.
//
// The algorithm:
//  1. Fix forced allocations and remove their capacity from the projects
//  2. Build a flow network source → free team → project → sink with edge
//     cost -b[i][j] and no edge for rejected pairings
//  3. Augment one unit at a time along the cheapest residual path
//     (Bellman-Ford with a FIFO queue, since costs may be negative)
//  4. Stop when no path remains, or under ObjectiveBenefit when the
//     cheapest path no longer adds benefit
//
// After k augmentations the flow is the cheapest flow of value k, so the
// final flow is optimal for the selected objective.
//
// Parameters:
//   - ctx: Context checked before each augmentation
//   - req: Problem snapshot
//
// Returns:
//   - types.SolveResult: Selected edges and their unbiased score
//   - error: ErrInfeasible, ErrValidation or a wrapped context error
func (s *ILP) Solve(ctx context.Context, req types.SolveRequest) (types.SolveResult, error) {
	p, err := prepare(req)
	if err != nil {
		return types.SolveResult{}, err
	}

	g := newFlowGraph(p)
	for {
		if err := ctx.Err(); err != nil {
			return types.SolveResult{}, fmt.Errorf("ilp solve: %w", err)
		}
		dist, prevEdge := g.shortestPaths()
		if math.IsInf(dist[g.sink], 1) {
			break
		}
		if s.objective == ObjectiveBenefit && dist[g.sink] >= -costEpsilon {
			break
		}
		g.augment(prevEdge)
	}

	return p.result(g.choices()), nil
}

// flowEdge is one arc of the residual network. Every arc has unit-or-more
// integer capacity and its reverse arc stored at index rev of the head node.
type flowEdge struct {
	to   int
	rev  int
	cap  int
	cost float64
}

// flowGraph is the assignment network.
//
// Node layout: 0 = source, 1..m = teams, m+1..m+n = projects, m+n+1 = sink.
type flowGraph struct {
	p     *problem
	adj   [][]flowEdge
	sink  int
	nodes int
}

func newFlowGraph(p *problem) *flowGraph {
	nodes := p.teams + p.projects + 2
	g := &flowGraph{p: p, adj: make([][]flowEdge, nodes), sink: nodes - 1, nodes: nodes}

	for i := range p.teams {
		if p.forced[i] >= 0 {
			continue
		}
		g.addEdge(0, g.teamNode(i), 1, 0)
		for j := range p.projects {
			if p.residual[j] == 0 || !p.allowed(i, j) {
				continue
			}
			g.addEdge(g.teamNode(i), g.projectNode(j), 1, -p.benefit[i][j])
		}
	}
	for j := range p.projects {
		if p.residual[j] > 0 {
			g.addEdge(g.projectNode(j), g.sink, p.residual[j], 0)
		}
	}

	return g
}

func (g *flowGraph) teamNode(i int) int { return 1 + i }
func (g *flowGraph) projectNode(j int) int { return 1 + g.p.teams + j }

func (g *flowGraph) addEdge(from, to, capacity int, cost float64) {
	g.adj[from] = append(g.adj[from], flowEdge{to: to, rev: len(g.adj[to]), cap: capacity, cost: cost})
	g.adj[to] = append(g.adj[to], flowEdge{to: from, rev: len(g.adj[from]) - 1, cap: 0, cost: -cost})
}

// edgeRef locates an arc by tail node and adjacency index.
type edgeRef struct {
	from int
	idx  int
}

// shortestPaths runs queue-based Bellman-Ford from the source over arcs with
// residual capacity. The residual network of a min-cost flow has no negative
// cycles, so the search terminates.
func (g *flowGraph) shortestPaths() ([]float64, []edgeRef) {
	dist := make([]float64, g.nodes)
	prev := make([]edgeRef, g.nodes)
	inQueue := make([]bool, g.nodes)
	for v := range dist {
		dist[v] = math.Inf(1)
		prev[v] = edgeRef{from: -1}
	}
	dist[0] = 0

	queue := []int{0}
	inQueue[0] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false
		for idx, e := range g.adj[u] {
			if e.cap <= 0 {
				continue
			}
			nd := dist[u] + e.cost
			if nd < dist[e.to]-costEpsilon {
				dist[e.to] = nd
				prev[e.to] = edgeRef{from: u, idx: idx}
				if !inQueue[e.to] {
					queue = append(queue, e.to)
					inQueue[e.to] = true
				}
			}
		}
	}

	return dist, prev
}

// augment pushes one unit along the path recorded in prev.
func (g *flowGraph) augment(prev []edgeRef) {
	for v := g.sink; v != 0; {
		ref := prev[v]
		e := &g.adj[ref.from][ref.idx]
		e.cap--
		g.adj[e.to][e.rev].cap++
		v = ref.from
	}
}

// choices reads the chosen project of every free team off saturated arcs.
// Every arc leaving a team node towards a project node is a forward arc, so a
// zero residual capacity means one unit of flow.
func (g *flowGraph) choices() []int {
	out := make([]int, g.p.teams)
	for i := range out {
		out[i] = -1
		for _, e := range g.adj[g.teamNode(i)] {
			j := e.to - 1 - g.p.teams
			if j >= 0 && j < g.p.projects && e.cap == 0 {
				out[i] = j
				break
			}
		}
	}

	return out
}
