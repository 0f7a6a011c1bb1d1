package feed

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

const workers = 20

// Universe is the result of [Walker.Gather].
type Universe struct {
	// Candidates holds every version of every reached package, ordered by
	// identity and version.
	Candidates []resolver.Candidate
	// Graph has one node per reached identity (normalized key) and an
	// edge for every dependency declared by any of its versions.
	Graph *dag.DAG
}

// Gather crawls the dependency closure of roots across all sources.
//
// Lookups run on a pool of workers. A failure to list a root is fatal;
// failures further down are logged and the package is left out, which
// the resolver later reports as an unresolved dependency. The crawl stops
// descending past Options.MaxDepth and stops enqueuing new packages once
// Options.MaxNodes have been fetched.
func (w *Walker) Gather(ctx context.Context, roots ...string) (u *Universe, err error) {
	start := time.Now()
	defer func() {
		packages, candidates := 0, 0
		if u != nil {
			packages, candidates = u.Graph.NodeCount(), len(u.Candidates)
		}
		observability.Feed().OnGatherComplete(ctx, packages, candidates, time.Since(start), err)
	}()

	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no packages to gather")
	}
	for _, r := range roots {
		if err := errors.ValidatePackageName(r); err != nil {
			return nil, err
		}
	}

	crawlCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := &crawler{
		ctx:     crawlCtx,
		cancel:  cancel,
		opts:    w.opts,
		fetch:   w.versions,
		g:       dag.New(nil),
		roots:   make(map[resolver.Key]bool, len(roots)),
		visited: make(map[resolver.Key]bool),
		jobs:    make(chan job, workers*2),
		results: make(chan result, workers*2),
	}
	for _, r := range roots {
		c.roots[resolver.KeyOf(r)] = true
	}
	return c.run(roots)
}

type crawler struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	fetch  func(context.Context, string) ([]resolver.Candidate, error)

	g     *dag.DAG
	cands []resolver.Candidate
	roots map[resolver.Key]bool

	jobs    chan job
	results chan result
	wg      sync.WaitGroup

	mu        sync.Mutex
	visited   map[resolver.Key]bool
	pending   int64
	nodeCount int32
}

type job struct {
	id    string
	depth int
}

type result struct {
	job
	cands []resolver.Candidate
	err   error
}

func (c *crawler) run(roots []string) (*Universe, error) {
	for range workers {
		c.wg.Add(1)
		go c.worker()
	}

	for _, r := range roots {
		c.enqueue(job{id: r})
	}
	err := c.collect()
	close(c.jobs)
	c.wg.Wait()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(c.cands, func(a, b resolver.Candidate) int {
		if a.Key() != b.Key() {
			if a.Key() < b.Key() {
				return -1
			}
			return 1
		}
		return a.Version.Compare(b.Version)
	})
	return &Universe{Candidates: c.cands, Graph: c.g}, nil
}

func (c *crawler) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		if c.ctx.Err() != nil {
			c.results <- result{job: j, err: c.ctx.Err()}
			continue
		}
		cands, err := c.fetch(c.ctx, j.id)
		c.results <- result{job: j, cands: cands, err: err}
	}
}

func (c *crawler) enqueue(j job) bool {
	key := resolver.KeyOf(j.id)
	c.mu.Lock()
	if c.visited[key] {
		c.mu.Unlock()
		return false
	}
	c.visited[key] = true
	c.mu.Unlock()

	atomic.AddInt64(&c.pending, 1)
	_ = c.g.AddNode(dag.Node{ID: string(key)})

	go func() {
		select {
		case c.jobs <- j:
		case <-c.ctx.Done():
			c.results <- result{job: j, err: c.ctx.Err()}
		}
	}()
	return true
}

func (c *crawler) collect() error {
	var fatal error
	for atomic.LoadInt64(&c.pending) > 0 {
		r := <-c.results
		if fatal == nil {
			if fatal = c.handle(r); fatal != nil {
				c.cancel()
			}
		}
		atomic.AddInt64(&c.pending, -1)
	}
	if fatal != nil {
		return fatal
	}
	return c.ctx.Err()
}

func (c *crawler) handle(r result) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	if r.err != nil {
		if c.roots[resolver.KeyOf(r.id)] {
			return errors.Wrap(errors.ErrCodePackageNotFound, r.err, "unable to list '%s'", r.id)
		}
		c.opts.Logger.Warn("fetch failed", "package", r.id, "err", r.err)
		return nil
	}

	c.cands = append(c.cands, r.cands...)
	if n, ok := c.g.Node(string(resolver.KeyOf(r.id))); ok {
		n.Meta["versions"] = len(r.cands)
	}
	atomic.AddInt32(&c.nodeCount, 1)
	c.enqueueDeps(r)
	return nil
}

func (c *crawler) enqueueDeps(r result) {
	if r.depth >= c.opts.MaxDepth {
		return
	}

	from := string(resolver.KeyOf(r.id))
	next := r.depth + 1
	count := atomic.LoadInt32(&c.nodeCount)

	for _, cand := range r.cands {
		for _, d := range cand.Dependencies {
			to := string(d.Key())
			if int(count) >= c.opts.MaxNodes {
				if _, known := c.g.Node(to); !known {
					continue
				}
			}
			c.enqueue(job{id: d.ID, depth: next})
			_ = c.g.AddEdge(dag.Edge{From: from, To: to})
		}
	}
}
