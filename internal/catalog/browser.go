package catalog

import (
	"context"
	"slices"
	"sync"
	"time"

	"rickdex/internal/api"
	"rickdex/internal/logging"

	"go.uber.org/zap"
)

// Lister fetches one page of characters.
type Lister interface {
	ListCharacters(ctx context.Context, page int, f api.Filters) (*api.CharacterPage, error)
}

// State is a snapshot of a Browser.
type State struct {
	Characters []api.Character
	Filters    api.Filters
	Page       int
	HasMore    bool
	Loading    bool
	// Err is the failure of the most recent resolved fetch, nil on success.
	Err error
	// Version increases on every mutation. Observers receiving snapshots
	// from several goroutines can drop any older than the one they hold.
	Version uint64
}

// Browser owns the filters, page cursor and accumulated list of one view.
//
// Filter and pagination calls return after updating state synchronously;
// the fetches they start resolve in the background. Results are applied in
// the order they resolve. The observer, if any, is called from background
// goroutines after each asynchronous change and must not call Close.
type Browser struct {
	lister Lister
	log    *zap.Logger
	delay  time.Duration
	search *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State
	observer  func(State)
	inflight  int
	fetchSeq  uint64
	searchSeq uint64
	closed    bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithSearchDelay sets the quiet window of the name search.
func WithSearchDelay(d time.Duration) Option {
	return func(b *Browser) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// WithObserver registers fn for asynchronous state changes.
func WithObserver(fn func(State)) Option {
	return func(b *Browser) { b.observer = fn }
}

// WithLogger replaces the browse category logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Browser) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBrowser creates a Browser on page 1 with no filters. Nothing is fetched
// until Start.
func NewBrowser(l Lister, opts ...Option) *Browser {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Browser{
		lister: l,
		log:    logging.Get(logging.CategoryBrowse),
		delay:  DefaultSearchDelay,
		ctx:    ctx,
		cancel: cancel,
		state:  State{Page: 1, HasMore: true},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.search = NewDebouncer(b.delay)
	return b
}

// SetObserver replaces the observer. Call it before Start.
func (b *Browser) SetObserver(fn func(State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = fn
}

// Start issues the initial load of page 1.
func (b *Browser) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.state.Page = 1
	b.fetchLocked(ModeReplace)
}

// SetFilter changes one filter field.
//
// A name change is stored at once but its fetch waits for the search delay
// to pass without another name change. Any other field resets the page and
// fetches immediately with the full criteria; that fetch already carries the
// latest name, so a pending name search is dropped.
func (b *Browser) SetFilter(field api.Field, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.state.Filters = b.state.Filters.With(field, value)
	b.bumpLocked()

	if field == api.FieldName {
		b.searchSeq++
		seq := b.searchSeq
		b.search.Debounce(func() { b.fireSearch(seq) })
		b.log.Debug("name search armed", zap.String("name", value), zap.Duration("delay", b.delay))
		return
	}

	b.searchSeq++
	b.search.Cancel()
	b.state.Page = 1
	b.fetchLocked(ModeReplace)
}

// LoadMore fetches the next page and appends it. It reports false, doing
// nothing, while a fetch is in flight or when there is no next page.
func (b *Browser) LoadMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.state.Loading || !b.state.HasMore {
		return false
	}
	b.state.Page++
	b.fetchLocked(ModeAppend)
	return true
}

// State returns a snapshot.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// SearchPending reports whether a name search is waiting to fire.
func (b *Browser) SearchPending() bool {
	return b.search.Pending()
}

// Close tears the browser down: the pending search is cancelled, in-flight
// requests are cancelled and background work is awaited. No fetch is issued
// and no state changes after Close returns.
func (b *Browser) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.search.Close()
	b.cancel()
	b.wg.Wait()
}

func (b *Browser) fireSearch(seq uint64) {
	b.mu.Lock()
	if b.closed || seq != b.searchSeq {
		b.mu.Unlock()
		return
	}
	b.state.Page = 1
	b.fetchLocked(ModeReplace)
	snap, obs := b.snapshotLocked(), b.observer
	b.mu.Unlock()

	if obs != nil {
		obs(snap)
	}
}

// fetchLocked starts a fetch of the current page with the current filters.
func (b *Browser) fetchLocked(mode Mode) {
	b.fetchSeq++
	seq := b.fetchSeq
	page, filters := b.state.Page, b.state.Filters

	b.inflight++
	b.state.Loading = true
	b.bumpLocked()

	b.log.Debug("fetch started",
		zap.Uint64("seq", seq),
		zap.Int("page", page),
		zap.Stringer("mode", mode),
		zap.Any("filters", filters))

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		res, err := b.lister.ListCharacters(b.ctx, page, filters)
		b.resolve(seq, mode, res, err)
	}()
}

func (b *Browser) resolve(seq uint64, mode Mode, res *api.CharacterPage, err error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	b.inflight--
	b.state.Loading = b.inflight > 0

	if err != nil {
		b.log.Warn("error loading characters", zap.Uint64("seq", seq), zap.Error(err))
		b.state.Characters = nil
		b.state.HasMore = false
		b.state.Page = 1
		b.state.Err = err
	} else {
		b.state.Characters = Reconcile(b.state.Characters, res.Results, mode)
		b.state.HasMore = res.HasMore()
		b.state.Err = nil
		b.log.Debug("fetch resolved",
			zap.Uint64("seq", seq),
			zap.Int("received", len(res.Results)),
			zap.Int("total", len(b.state.Characters)),
			zap.Bool("has_more", b.state.HasMore))
	}
	b.bumpLocked()

	snap, obs := b.snapshotLocked(), b.observer
	b.mu.Unlock()

	if obs != nil {
		obs(snap)
	}
}

func (b *Browser) bumpLocked() {
	b.state.Version++
}

func (b *Browser) snapshotLocked() State {
	s := b.state
	s.Characters = slices.Clone(b.state.Characters)
	return s
}
